package contract

import "github.com/alexanderramin/eap/internal/app"

type StatusRequest = app.StatusRequest

func NewStatusRequest(eapID string) StatusRequest {
	return app.NewStatusRequest(eapID)
}

type StatusResponse = app.StatusResponse
