package wbs

import (
	"time"

	"github.com/alexanderramin/eap/internal/domain"
)

// Violation reports a dependency whose constrained successor boundary falls
// before the date the constraint requires.
type Violation struct {
	Dependency  *domain.Dependency
	Predecessor *domain.WBSItem
	Successor   *domain.WBSItem
	Required    time.Time
	Actual      time.Time
	SlipDays    int
}

// Check evaluates one dependency against the stored dates:
//
//	FS  successor start  >= predecessor finish + lag
//	SS  successor start  >= predecessor start  + lag
//	FF  successor finish >= predecessor finish + lag
//	SF  successor finish >= predecessor start  + lag
//
// A negative lag allows the successor boundary that many days early. The
// second result is false when a needed date is missing.
func Check(d *domain.Dependency, pred, succ *domain.WBSItem) (*Violation, bool) {
	ref := referenceBoundary(d.Type, pred)
	got := constrainedBoundary(d.Type, succ)
	if ref == nil || got == nil {
		return nil, false
	}
	required := dateOnly(*ref).AddDate(0, 0, d.LagDays)
	actual := dateOnly(*got)
	if !actual.Before(required) {
		return nil, true
	}
	return &Violation{
		Dependency:  d,
		Predecessor: pred,
		Successor:   succ,
		Required:    required,
		Actual:      actual,
		SlipDays:    daysBetween(actual, required),
	}, true
}

func referenceBoundary(t domain.DependencyType, pred *domain.WBSItem) *time.Time {
	switch t {
	case domain.FinishToStart, domain.FinishToFinish:
		return pred.EndDate
	default:
		return pred.StartDate
	}
}

func constrainedBoundary(t domain.DependencyType, succ *domain.WBSItem) *time.Time {
	switch t {
	case domain.FinishToStart, domain.StartToStart:
		return succ.StartDate
	default:
		return succ.EndDate
	}
}

// Bar is one Gantt row: an annotated item placed on a day grid starting at
// the chart origin. Unscheduled items have no dates and zero extent.
type Bar struct {
	Row
	Offset    int
	Duration  int
	Scheduled bool
}

// Gantt is the day grid of a whole EAP.
type Gantt struct {
	Origin time.Time
	Span   int
	Bars   []Bar
}

// BuildGantt lays rows out on a day grid. Items missing a date occupy a
// single day at their known boundary; items with neither are unscheduled.
func BuildGantt(rows []Row) Gantt {
	var g Gantt
	var end time.Time
	for _, r := range rows {
		start, finish, ok := span(r.Item)
		if !ok {
			continue
		}
		if g.Origin.IsZero() || start.Before(g.Origin) {
			g.Origin = start
		}
		if finish.After(end) {
			end = finish
		}
	}
	if !g.Origin.IsZero() {
		g.Span = daysBetween(g.Origin, end) + 1
	}

	g.Bars = make([]Bar, 0, len(rows))
	for _, r := range rows {
		b := Bar{Row: r}
		if start, finish, ok := span(r.Item); ok {
			b.Scheduled = true
			b.Offset = daysBetween(g.Origin, start)
			b.Duration = daysBetween(start, finish) + 1
		}
		g.Bars = append(g.Bars, b)
	}
	return g
}

func span(it *domain.WBSItem) (time.Time, time.Time, bool) {
	switch {
	case it.StartDate != nil && it.EndDate != nil:
		return dateOnly(*it.StartDate), dateOnly(*it.EndDate), true
	case it.StartDate != nil:
		d := dateOnly(*it.StartDate)
		return d, d, true
	case it.EndDate != nil:
		d := dateOnly(*it.EndDate)
		return d, d, true
	}
	return time.Time{}, time.Time{}, false
}

// dateOnly truncates t to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
