package apiclient

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrorKind separates requests that never completed from requests the
// backend rejected.
type ErrorKind string

const (
	// KindNetwork means the request never completed (DNS, dial, timeout,
	// exhausted retries).
	KindNetwork ErrorKind = "network"
	// KindAPI means the backend answered with a non-2xx status.
	KindAPI ErrorKind = "api"
)

// Error is the single error type the client raises. Callers never see raw
// transport or decode errors.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newNetworkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("request failed: %v", err),
		cause:   err,
	}
}

// newAPIError extracts the structured message the backend optionally sends
// ({"error": ...} or {"message": ...}) and falls back to a generic
// status-coded message.
func newAPIError(status int, body []byte) *Error {
	message := ""
	if msg := gjson.GetBytes(body, "error"); msg.Type == gjson.String {
		message = msg.String()
	} else if msg := gjson.GetBytes(body, "message"); msg.Type == gjson.String {
		message = msg.String()
	}
	if message == "" {
		message = fmt.Sprintf("HTTP error %d", status)
	}
	return &Error{
		Kind:    KindAPI,
		Status:  status,
		Message: message,
	}
}

// IsNetworkError reports whether err is a request that never completed.
func IsNetworkError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// IsAPIError reports whether err is a backend rejection.
func IsAPIError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindAPI
}
