package formatter

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/eap/internal/contract"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"1234567.5", "1,234,567.50"},
		{"-1500", "-1,500.00"},
		{"0.125", "0.13"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestDueDate(t *testing.T) {
	end := day(10)
	assert.Equal(t, "--", stripANSI(DueDate(nil, day(1), 0)))
	assert.Equal(t, "2025-01-10 (In 9d)", stripANSI(DueDate(&end, day(1), 0)))
	assert.Equal(t, "2025-01-10 (5d ago)", stripANSI(DueDate(&end, day(15), 100)))
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[████░░░░░░]  45%", stripANSI(RenderProgress(45, 10)))
	assert.Equal(t, "[████] 100%", stripANSI(RenderProgress(150, 4)))
	assert.Equal(t, "[░░]   0%", stripANSI(RenderProgress(-5, 1)))
}

func TestRenderCompactBar(t *testing.T) {
	got := stripANSI(RenderCompactBar(50, 4, true))
	assert.Equal(t, "██░░", got)
	assert.NotContains(t, got, "%")
}

func TestRenderTable_Alignment(t *testing.T) {
	cols := Cols("NAME", "AMOUNT")
	cols[1].Right = true
	out := stripANSI(RenderTable(cols, [][]string{{"Piso", "5"}, {"Telhado", "1,200.00"}}))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME       AMOUNT", lines[0])
	assert.Equal(t, "Piso            5", lines[2])
	assert.Equal(t, "Telhado  1,200.00", lines[3])
}

func TestRenderTable_NoColumns(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func treeRows(t *testing.T) []wbs.Row {
	t.Helper()
	e, err := wbs.NewEngine(nil, nil)
	require.NoError(t, err)
	add := func(name string, parent *domain.WBSItem, budget int64, progress int) *domain.WBSItem {
		it := &domain.WBSItem{EAPID: "e", Name: name, Type: domain.ItemTask, Progress: progress, Budget: decimal.NewFromInt(budget)}
		if parent != nil {
			it.ParentID = &parent.ID
		}
		require.NoError(t, e.CreateItem(it))
		return it
	}
	fund := add("Fundação", nil, 300, 0)
	esc := add("Escavação", fund, 200, 0)
	add("Marcação", esc, 100, 100)
	add("Sapatas", fund, 100, 0)
	add("Estrutura", nil, 100, 50)
	return e.Rows()
}

func TestFormatTree_Connectors(t *testing.T) {
	out := stripANSI(FormatTree(treeRows(t)))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.True(t, strings.HasPrefix(lines[0], "1 ▶ Fundação"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "├─ 1.1 ▶ Escavação"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "│  └─ 1.1.1 ✔ Marcação"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "└─ 1.2 Sapatas"), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "2 ▶ Estrutura"), lines[4])
	assert.Contains(t, lines[0], "[  33% · 300.00 ]")
	assert.Contains(t, lines[2], "[ 100% · 100.00 ]")
}

func TestFormatTree_Empty(t *testing.T) {
	assert.Empty(t, FormatTree(nil))
}

func TestFormatGantt(t *testing.T) {
	item := func(code, name string) *domain.WBSItem {
		return &domain.WBSItem{Code: code, Name: name}
	}
	g := wbs.Gantt{
		Origin: day(1),
		Span:   10,
		Bars: []wbs.Bar{
			{Row: wbs.Row{Item: item("1", "Escavação"), Progress: 100, Status: domain.StatusCompleted}, Offset: 0, Duration: 5, Scheduled: true},
			{Row: wbs.Row{Item: item("2", "Sapatas"), Status: domain.StatusNotStarted}, Offset: 5, Duration: 5, Scheduled: true},
			{Row: wbs.Row{Item: item("3", "Cobertura")}},
		},
	}

	out := stripANSI(FormatGantt(g, 40))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "2025-01-01 2025-01-10")
	assert.Contains(t, lines[1], "█████ 100%")
	assert.Contains(t, lines[2], "     ░░░░░ 0%")
	assert.Contains(t, lines[3], "unscheduled")
}

func TestFormatGantt_CompressesLongSpans(t *testing.T) {
	g := wbs.Gantt{
		Origin: day(1),
		Span:   100,
		Bars: []wbs.Bar{
			{Row: wbs.Row{Item: &domain.WBSItem{Code: "1", Name: "Obra"}}, Offset: 0, Duration: 100, Scheduled: true},
		},
	}
	out := stripANSI(FormatGantt(g, 20))
	assert.Contains(t, out, strings.Repeat(emptyBlock, 20)+" 0%")
	assert.NotContains(t, out, strings.Repeat(emptyBlock, 21))
}

func TestFormatGantt_NoDates(t *testing.T) {
	g := wbs.Gantt{Bars: []wbs.Bar{{Row: wbs.Row{Item: &domain.WBSItem{Code: "1"}}}}}
	assert.Contains(t, FormatGantt(g, 40), "No item has dates yet.")
	assert.Contains(t, FormatGantt(wbs.Gantt{}, 40), "No items.")
}

func TestFormatViolations(t *testing.T) {
	assert.Contains(t, stripANSI(FormatViolations(nil)), "All dependencies are satisfied")

	v := wbs.Violation{
		Dependency:  &domain.Dependency{Type: domain.FinishToStart, LagDays: 2},
		Predecessor: &domain.WBSItem{Code: "1.1"},
		Successor:   &domain.WBSItem{Code: "1.2"},
		Required:    day(7),
		Actual:      day(3),
		SlipDays:    4,
	}
	out := stripANSI(FormatViolations([]wbs.Violation{v}))
	assert.Contains(t, out, "FS +2d")
	assert.Contains(t, out, "2025-01-07")
	assert.Contains(t, out, "4d")
}

func TestFormatCodeIssues(t *testing.T) {
	out := stripANSI(FormatCodeIssues([]error{errors.New(`item x: code "3.1" does not extend parent code "2"`)}))
	assert.Contains(t, out, "CODE ISSUES")
	assert.Contains(t, out, `✘ item x: code "3.1" does not extend parent code "2"`)
}

func TestFormatStatus(t *testing.T) {
	resp := &contract.StatusResponse{
		EAP: &domain.EAP{ShortID: "OBRA01", Name: "Casa"},
		Aggregate: wbs.AggregateStats{
			TotalBudget:  decimal.NewFromInt(1000),
			TotalItems:   4,
			Completed:    1,
			InProgress:   2,
			NotStarted:   1,
			AvgProgress:  30,
			CountsByType: map[domain.ItemType]int{domain.ItemPhase: 1, domain.ItemTask: 3},
		},
		Schedule:   wbs.ScheduleSummary{Total: 4, Completed: 1, InProgress: 2, NotStarted: 1, Overdue: 1},
		Violations: 2,
	}
	out := stripANSI(FormatStatus(resp))
	assert.Contains(t, out, "OBRA01  Casa")
	assert.Contains(t, out, "1,000.00")
	assert.Contains(t, out, "30%")
	assert.Contains(t, out, "1 Completed · 2 In Progress · 1 Not Started")
	assert.Contains(t, out, "25% of items done")
	assert.Contains(t, out, "Phase 1")
	assert.Contains(t, out, "1 Overdue")
	assert.Contains(t, out, "2 dependency violations")
}

func TestFormatItemInspect(t *testing.T) {
	end := day(10)
	it := &domain.WBSItem{
		ID: "0123456789", Code: "1.2", Name: "Sapatas", Type: domain.ItemTask,
		Budget: decimal.NewFromInt(600), EndDate: &end, Responsible: "Carla", Critical: true,
	}
	out := stripANSI(FormatItemInspect(ItemDetail{
		Item:     it,
		Progress: 0,
		Status:   domain.StatusNotStarted,
		Executed: "0.00",
		Leaf:     true,
		Now:      day(15),
		Predecessors: []DependencyLine{{
			Dependency: &domain.Dependency{Type: domain.FinishToStart, LagDays: -1},
			Code:       "1.1",
			Name:       "Escavação",
		}},
	}))
	assert.Contains(t, out, "SAPATAS")
	assert.Contains(t, out, "600.00")
	assert.Contains(t, out, "2025-01-10 (5d ago)")
	assert.Contains(t, out, "Carla")
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "DEPENDS ON")
	assert.Contains(t, out, "1.1 Escavação  FS -1d")
	assert.NotContains(t, out, "REQUIRED BY")
	assert.NotContains(t, out, "(derived)")
}
