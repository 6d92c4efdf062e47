package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/eap/internal/contract"
	"github.com/alexanderramin/eap/internal/domain"
)

// FormatStatus renders the EAP dashboard: budget roll-up, status counts and
// the schedule summary.
func FormatStatus(resp *contract.StatusResponse) string {
	agg := resp.Aggregate
	sched := resp.Schedule
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", StyleHeader.Render(resp.EAP.DisplayID()), Bold(resp.EAP.Name))
	fmt.Fprintf(&b, "%s %s\n", Dim("Budget     "), Money(agg.TotalBudget))
	fmt.Fprintf(&b, "%s %s\n", Dim("Progress   "), RenderProgress(int(agg.AvgProgress+0.5), 20))
	fmt.Fprintf(&b, "%s %d\n\n", Dim("Items      "), agg.TotalItems)

	b.WriteString(Header("Status") + "\n")
	b.WriteString(StyleGreen.Render(fmt.Sprintf("%d Completed", agg.Completed)))
	b.WriteString(Dim(" · "))
	b.WriteString(StyleYellow.Render(fmt.Sprintf("%d In Progress", agg.InProgress)))
	b.WriteString(Dim(" · "))
	b.WriteString(StyleFg.Render(fmt.Sprintf("%d Not Started", agg.NotStarted)))
	b.WriteString("\n")
	done := 0
	if agg.TotalItems > 0 {
		done = agg.Completed * 100 / agg.TotalItems
	}
	fmt.Fprintf(&b, "%s %s\n\n", RenderCompactBar(done, 20, agg.TotalItems == 0), Dim(fmt.Sprintf("%d%% of items done", done)))

	if len(agg.CountsByType) > 0 {
		b.WriteString(Header("By type") + "\n")
		types := make([]string, 0, len(agg.CountsByType))
		for t := range agg.CountsByType {
			types = append(types, string(t))
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(&b, "%s %d\n", TypeBadge(domain.ItemType(t)), agg.CountsByType[domain.ItemType(t)])
		}
		b.WriteString("\n")
	}

	b.WriteString(Header("Schedule") + "\n")
	overdue := fmt.Sprintf("%d Overdue", sched.Overdue)
	if sched.Overdue > 0 {
		overdue = StyleRed.Render(overdue)
	} else {
		overdue = Dim(overdue)
	}
	fmt.Fprintf(&b, "%d items · %s", sched.Total, overdue)
	if resp.Violations > 0 {
		b.WriteString(Dim(" · ") + StyleRed.Render(fmt.Sprintf("%d dependency violations", resp.Violations)))
	}
	b.WriteString("\n")

	return b.String()
}
