package app

// RequestErrorCode classifies a read request the service refused before
// touching any data.
type RequestErrorCode string

const (
	ErrMissingEAP    RequestErrorCode = "MISSING_EAP"
	ErrInvalidStatus RequestErrorCode = "INVALID_STATUS"
)

type RequestError struct {
	Code    RequestErrorCode
	Message string
}

func (e *RequestError) Error() string {
	return string(e.Code) + ": " + e.Message
}
