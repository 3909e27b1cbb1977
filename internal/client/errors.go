package client

import (
	"errors"
	"fmt"
)

// ErrInvalidProxyAddress is returned when the proxy address is not in
// "host:port" form.
var ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

// ErrInvalidEndpoint is returned when the audit endpoint is not an
// absolute http or https URL.
var ErrInvalidEndpoint = errors.New("invalid audit endpoint: expected http or https URL")

// RemoteRequestError is returned when the audit service answers with a
// status outside 200-299. The response body is not inspected.
type RemoteRequestError struct {
	StatusCode int
	Status     string
}

// Error implements error.
func (e *RemoteRequestError) Error() string {
	if e.Status != "" {
		return "audit service returned " + e.Status
	}
	return fmt.Sprintf("audit service returned status %d", e.StatusCode)
}

// TransportError is returned when the request could not be completed:
// connection refused, DNS failure, timeout or cancellation.
type TransportError struct {
	Err error
}

// Error returns the message of the underlying failure, which may be empty.
func (e *TransportError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Unwrap returns the underlying failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}
