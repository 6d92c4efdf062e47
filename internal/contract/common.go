package contract

import "github.com/alexanderramin/eap/internal/app"

type RequestErrorCode = app.RequestErrorCode

const (
	ErrMissingEAP    RequestErrorCode = app.ErrMissingEAP
	ErrInvalidStatus RequestErrorCode = app.ErrInvalidStatus
)

type RequestError = app.RequestError

type ImportResult = app.ImportResult
