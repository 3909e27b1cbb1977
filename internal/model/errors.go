package model

import "fmt"

// MalformedResponseError is returned when an audit service response does
// not match the AuditResult shape: invalid JSON, missing fields,
// out-of-range scores or an unrecognized impact value.
//
// It is fatal to the request that produced it, never to the session.
type MalformedResponseError struct {
	// Field is the JSON path of the offending member, e.g. "issues[2].impact".
	// Empty when the problem concerns the whole body.
	Field string

	// Reason describes what is wrong with the field.
	Reason string

	// Err is the underlying decoding error, if any.
	Err error
}

// newMalformed creates a MalformedResponseError with a formatted reason.
func newMalformed(field, format string, args ...any) *MalformedResponseError {
	return &MalformedResponseError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	if e.Field == "" {
		return "malformed audit response: " + e.Reason
	}
	return "malformed audit response: " + e.Field + ": " + e.Reason
}

// Unwrap returns the underlying decoding error.
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
