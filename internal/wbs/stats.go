package wbs

import (
	"time"

	"github.com/alexanderramin/eap/internal/domain"
)

// ScheduleSummary holds the counts shown by summary displays. Every item is
// in exactly one of Completed, InProgress and NotStarted; Overdue overlaps
// with them.
type ScheduleSummary struct {
	Total      int
	Completed  int
	InProgress int
	NotStarted int
	Overdue    int
}

// ScheduleStats counts rows by status category and lateness.
func ScheduleStats(rows []Row, today time.Time) ScheduleSummary {
	var s ScheduleSummary
	overdue := Overdue(today)
	for _, r := range rows {
		s.Total++
		switch category(r.Status) {
		case domain.StatusCompleted:
			s.Completed++
		case domain.StatusNotStarted:
			s.NotStarted++
		default:
			s.InProgress++
		}
		if overdue(r) {
			s.Overdue++
		}
	}
	return s
}
