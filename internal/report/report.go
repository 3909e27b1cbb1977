package report

import (
	"time"

	"github.com/nao1215/webaudit/internal/audit"
	"github.com/nao1215/webaudit/internal/model"
)

// Status values of a Report.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Report is the outcome of auditing one URL.
type Report struct {
	// URL is the submitted URL exactly as entered.
	URL string `json:"url"`

	// AnalyzedAt is when the outcome was recorded.
	AnalyzedAt time.Time `json:"analyzedAt"`

	// Status is StatusSuccess or StatusError.
	Status string `json:"status"`

	// Error is the user-facing failure message.
	Error string `json:"error,omitempty"`

	// Result is the audit result of a successful run.
	Result *model.AuditResult `json:"result,omitempty"`
}

// FromState builds a Report from the terminal state of a submission.
func FromState(state audit.State, at time.Time) *Report {
	r := &Report{
		URL:        state.URL(),
		AnalyzedAt: at,
	}
	if state.Phase() == audit.PhaseSuccess && state.Result() != nil {
		r.Status = StatusSuccess
		r.Result = state.Result()
		return r
	}

	r.Status = StatusError
	r.Error = state.Message()
	if r.Error == "" {
		r.Error = audit.FallbackMessage
	}
	return r
}

// Failed reports whether the audit ended in an error.
func (r *Report) Failed() bool {
	return r.Status != StatusSuccess
}

// AnyFailed reports whether at least one report failed.
func AnyFailed(reports []*Report) bool {
	for _, r := range reports {
		if r.Failed() {
			return true
		}
	}
	return false
}
