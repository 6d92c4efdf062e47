package contract

import "github.com/alexanderramin/eap/internal/app"

type TreeRequest = app.TreeRequest

func NewTreeRequest(eapID string) TreeRequest {
	return app.NewTreeRequest(eapID)
}

type TreeResponse = app.TreeResponse

type ScheduleRequest = app.ScheduleRequest

type ScheduleResponse = app.ScheduleResponse
