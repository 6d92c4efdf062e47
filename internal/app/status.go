package app

import (
	"time"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
)

type StatusRequest struct {
	EAPID string
	Now   *time.Time
}

func NewStatusRequest(eapID string) StatusRequest {
	return StatusRequest{EAPID: eapID}
}

// StatusResponse combines the budget roll-up with the schedule counts.
type StatusResponse struct {
	EAP         *domain.EAP
	GeneratedAt time.Time
	Aggregate   wbs.AggregateStats
	Schedule    wbs.ScheduleSummary
	Violations  int
}
