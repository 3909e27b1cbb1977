package audit

import (
	"errors"

	"github.com/nao1215/webaudit/internal/client"
	"github.com/nao1215/webaudit/internal/model"
)

// Messages shown to the user in the Error state.
const (
	InvalidURLMessage     = "Please enter a valid URL (e.g., https://example.com)"
	AnalysisFailedMessage = "Analysis failed. Please try again."
	FallbackMessage       = "An error occurred"
)

// ErrSuperseded is returned for a submission that was replaced by a newer
// submission or a Reset before it completed. Its outcome is never written
// to the lifecycle state.
var ErrSuperseded = errors.New("audit: submission superseded")

// ValidationError is returned when the submitted URL is not an absolute
// http or https URL. No request is issued for it.
type ValidationError struct {
	URL string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return InvalidURLMessage
}

// UserMessage maps a submission failure to the message shown in the Error
// state.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return InvalidURLMessage
	}

	var remoteErr *client.RemoteRequestError
	if errors.As(err, &remoteErr) {
		return AnalysisFailedMessage
	}

	var malformedErr *model.MalformedResponseError
	if errors.As(err, &malformedErr) {
		return AnalysisFailedMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
