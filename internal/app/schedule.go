package app

import (
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
)

type ScheduleRequest struct {
	EAPID string
}

type ScheduleResponse struct {
	EAP        *domain.EAP
	Gantt      wbs.Gantt
	Violations []wbs.Violation
	// CodeIssues lists stored codes that break the parent-prefix numbering.
	CodeIssues []error
}
