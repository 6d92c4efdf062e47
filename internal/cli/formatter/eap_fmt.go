package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/eap/internal/domain"
)

// FormatEAPList renders EAPs as a table.
func FormatEAPList(eaps []*domain.EAP) string {
	rows := make([][]string, 0, len(eaps))
	for _, e := range eaps {
		rows = append(rows, []string{
			StyleHeader.Render(e.DisplayID()),
			Bold(e.Name),
			e.CreatedBy,
			Dim(e.CreatedAt.Format(domain.DateLayout)),
		})
	}
	return RenderTable(Cols("ID", "NAME", "CREATED BY", "CREATED"), rows)
}

// ItemDetail gathers what the inspect view shows about one item.
type ItemDetail struct {
	Item         *domain.WBSItem
	Progress     int
	Status       domain.ItemStatus
	Executed     string
	Leaf         bool
	Now          time.Time
	Predecessors []DependencyLine
	Successors   []DependencyLine
}

// DependencyLine is a dependency with the code and name of the item on the
// other end.
type DependencyLine struct {
	Dependency *domain.Dependency
	Code       string
	Name       string
}

// FormatItemInspect renders the detail box of a single item.
func FormatItemInspect(d ItemDetail) string {
	it := d.Item
	var b strings.Builder

	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value)
	}
	field("Code", StyleHeader.Render(it.Code))
	field("Type", TypeBadge(it.Type))
	field("Status", StatusPill(d.Status))
	progressLabel := RenderProgress(d.Progress, 20)
	if !d.Leaf {
		progressLabel += Dim("  (derived)")
	}
	field("Progress", progressLabel)
	field("Budget", Money(it.Budget))
	field("Executed", d.Executed)
	field("Start", Date(it.StartDate))
	field("End", DueDate(it.EndDate, d.Now, d.Progress))
	if it.Responsible != "" {
		field("Responsible", it.Responsible)
	}
	if it.Critical {
		field("Critical", CriticalMark(true)+" yes")
	}
	field("ID", TruncID(it.ID))
	if it.Description != "" {
		b.WriteString("\n" + it.Description + "\n")
	}

	if len(d.Predecessors) > 0 {
		b.WriteString("\n" + Header("Depends on") + "\n")
		for _, p := range d.Predecessors {
			b.WriteString(dependencyLine(p) + "\n")
		}
	}
	if len(d.Successors) > 0 {
		b.WriteString("\n" + Header("Required by") + "\n")
		for _, s := range d.Successors {
			b.WriteString(dependencyLine(s) + "\n")
		}
	}

	return RenderBox(it.Name, strings.TrimRight(b.String(), "\n"))
}

func dependencyLine(l DependencyLine) string {
	kind := string(l.Dependency.Type)
	if lag := Lag(l.Dependency.LagDays); lag != "" {
		kind += " " + lag
	}
	return fmt.Sprintf("  %s %s  %s", StyleHeader.Render(l.Code), l.Name, StyleBlue.Render(kind))
}

// FormatDependencies renders every dependency of an EAP. codes maps item ids
// to their WBS codes.
func FormatDependencies(deps []*domain.Dependency, codes map[string]string) string {
	rows := make([][]string, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, []string{
			TruncID(d.ID),
			StyleHeader.Render(codes[d.PredecessorID]),
			StyleHeader.Render(codes[d.SuccessorID]),
			StyleBlue.Render(string(d.Type)),
			d.Type.Label(),
			Lag(d.LagDays),
		})
	}
	cols := Cols("ID", "FROM", "TO", "TYPE", "MEANING", "LAG")
	cols[5].Right = true
	return RenderTable(cols, rows)
}
