package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
	"github.com/charmbracelet/lipgloss"
)

const ganttLabelWidth = 28

// FormatGantt draws one bar per row on a shared day axis no wider than width
// columns. Long spans are compressed so several days share a column. The
// progressed share of each bar is filled; critical bars are red.
func FormatGantt(g wbs.Gantt, width int) string {
	if len(g.Bars) == 0 {
		return Dim("No items.") + "\n"
	}
	if g.Span == 0 {
		return Dim("No item has dates yet.") + "\n"
	}
	if width < 10 {
		width = 10
	}
	daysPerCol := (g.Span + width - 1) / width
	cols := (g.Span + daysPerCol - 1) / daysPerCol

	var b strings.Builder
	end := g.Origin.AddDate(0, 0, g.Span-1)
	axis := g.Origin.Format(domain.DateLayout)
	tail := end.Format(domain.DateLayout)
	gap := max(1, cols-len(axis)-len(tail))
	fmt.Fprintf(&b, "%s  %s\n", strings.Repeat(" ", ganttLabelWidth), Dim(axis+strings.Repeat(" ", gap)+tail))

	for _, bar := range g.Bars {
		label := strings.Repeat("  ", bar.Depth) + bar.Item.Code + " " + bar.Item.Name
		label = truncate(label, ganttLabelWidth)
		label += strings.Repeat(" ", ganttLabelWidth-lipgloss.Width(label))

		if !bar.Scheduled {
			fmt.Fprintf(&b, "%s  %s\n", label, Dim("unscheduled"))
			continue
		}
		start := bar.Offset / daysPerCol
		length := max(1, (bar.Offset+bar.Duration+daysPerCol-1)/daysPerCol-start)
		done := length * bar.Progress / 100

		style := StatusStyle(bar.Status)
		if bar.Item.Critical {
			style = StyleRed
		}
		cells := style.Render(strings.Repeat(filledBlock, done) + strings.Repeat(emptyBlock, length-done))
		fmt.Fprintf(&b, "%s  %s%s %s\n", label, strings.Repeat(" ", start), cells, Dim(fmt.Sprintf("%d%%", bar.Progress)))
	}
	return b.String()
}

// FormatViolations lists dependencies whose successor starts or finishes too
// early.
func FormatViolations(vs []wbs.Violation) string {
	if len(vs) == 0 {
		return StyleGreen.Render("✔ All dependencies are satisfied.") + "\n"
	}
	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		kind := string(v.Dependency.Type)
		if lag := Lag(v.Dependency.LagDays); lag != "" {
			kind += " " + lag
		}
		rows = append(rows, []string{
			StyleHeader.Render(v.Predecessor.Code),
			StyleHeader.Render(v.Successor.Code),
			StyleBlue.Render(kind),
			v.Required.Format(domain.DateLayout),
			v.Actual.Format(domain.DateLayout),
			StyleRed.Render(fmt.Sprintf("%dd", v.SlipDays)),
		})
	}
	cols := Cols("FROM", "TO", "TYPE", "REQUIRED", "ACTUAL", "SLIP")
	cols[5].Right = true
	return RenderTable(cols, rows)
}

// FormatCodeIssues lists items whose stored code is inconsistent.
func FormatCodeIssues(issues []error) string {
	var b strings.Builder
	b.WriteString(Header("Code issues") + "\n")
	for _, err := range issues {
		b.WriteString(StyleRed.Render("✘ ") + err.Error() + "\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
