package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
	"github.com/charmbracelet/lipgloss"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// lastSiblings marks, for rows in depth-first order, the rows that are the
// last child of their parent.
func lastSiblings(rows []wbs.Row) []bool {
	last := make([]bool, len(rows))
	seen := make(map[int]bool)
	for i := len(rows) - 1; i >= 0; i-- {
		d := rows[i].Depth
		last[i] = !seen[d]
		seen[d] = true
		for k := range seen {
			if k > d {
				delete(seen, k)
			}
		}
	}
	return last
}

// FormatTree renders rows as an indented tree. Each line shows the code and
// name with a right-aligned badge holding the derived progress and budget.
// Completed items are dimmed with a check mark; items in progress are
// highlighted.
func FormatTree(rows []wbs.Row) string {
	if len(rows) == 0 {
		return ""
	}

	type line struct {
		content string
		badge   string
	}
	last := lastSiblings(rows)
	lines := make([]line, len(rows))
	ancestorLast := make([]bool, 0, 8)
	width := 0

	for i, r := range rows {
		ancestorLast = append(ancestorLast[:r.Depth], last[i])

		var prefix strings.Builder
		if r.Depth > 0 {
			for lvl := 1; lvl < r.Depth; lvl++ {
				if ancestorLast[lvl] {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(treePipe)
				}
			}
			if last[i] {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := r.Item.Name
		marker := ""
		switch r.Status {
		case domain.StatusCompleted:
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		case domain.StatusInProgress:
			marker = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		case domain.StatusBlocked:
			marker = StyleRed.Render("⊘ ")
		case domain.StatusPaused:
			marker = StyleBlue.Render("‖ ")
		case domain.StatusCancelled:
			marker = StyleDim.Render("✖ ")
			title = Dim(title)
		}
		if r.Item.Critical {
			title += " " + CriticalMark(true)
		}

		content := StyleDim.Render(prefix.String()) + StyleDim.Render(r.Item.Code) + " " + marker + title
		lines[i] = line{
			content: content,
			badge:   StyleBlue.Render(fmt.Sprintf("[ %3d%% · %s ]", r.Progress, Money(r.Item.Budget))),
		}
		width = max(width, lipgloss.Width(content))
	}

	var b strings.Builder
	for _, l := range lines {
		pad := width - lipgloss.Width(l.content)
		b.WriteString(l.content + strings.Repeat(" ", pad) + "  " + l.badge + "\n")
	}
	return b.String()
}
