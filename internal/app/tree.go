package app

import (
	"time"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/wbs"
)

// TreeRequest selects the rows of one EAP. With no status and Overdue unset
// every row is returned; otherwise rows matching any criterion are kept
// together with their ancestors.
type TreeRequest struct {
	EAPID    string
	Statuses []domain.ItemStatus
	Overdue  bool
	Now      *time.Time
}

func NewTreeRequest(eapID string) TreeRequest {
	return TreeRequest{EAPID: eapID}
}

// Filtered reports whether the request narrows the tree.
func (r TreeRequest) Filtered() bool {
	return len(r.Statuses) > 0 || r.Overdue
}

type TreeResponse struct {
	EAP      *domain.EAP
	Rows     []wbs.Row
	Filtered bool
}
