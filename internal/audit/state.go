package audit

import (
	"encoding/json"

	"github.com/nao1215/webaudit/internal/model"
)

// Phase is the tag of a lifecycle State.
type Phase int

const (
	// PhaseIdle is the initial phase; nothing has been submitted.
	PhaseIdle Phase = iota
	// PhaseValidating is entered on every submission.
	PhaseValidating
	// PhaseRequesting means exactly one call to the audit service is in flight.
	PhaseRequesting
	// PhaseSuccess holds the current report.
	PhaseSuccess
	// PhaseError holds the message of the last failure.
	PhaseError
)

// String returns the lowercase name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseRequesting:
		return "requesting"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Busy reports whether input should be disabled in this phase.
func (p Phase) Busy() bool {
	return p == PhaseValidating || p == PhaseRequesting
}

// Terminal reports whether the phase ends a submission.
func (p Phase) Terminal() bool {
	return p == PhaseSuccess || p == PhaseError
}

// State is an immutable snapshot of a lifecycle. Result is set only in
// PhaseSuccess; Message and Err only in PhaseError.
type State struct {
	phase  Phase
	url    string
	result *model.AuditResult
	err    error
	seq    uint64
}

// Phase returns the tag of the state.
func (s State) Phase() Phase { return s.phase }

// URL returns the URL of the submission the state belongs to, exactly as
// entered. It is empty in the initial Idle state.
func (s State) URL() string { return s.url }

// Result returns the report in PhaseSuccess and nil otherwise.
func (s State) Result() *model.AuditResult { return s.result }

// Err returns the classified failure in PhaseError and nil otherwise.
func (s State) Err() error { return s.err }

// Message returns the user-facing error message in PhaseError and an
// empty string otherwise.
func (s State) Message() string {
	if s.phase != PhaseError {
		return ""
	}
	return UserMessage(s.err)
}

// Seq returns the sequence number of the submission that produced the
// state. The initial state has sequence number zero.
func (s State) Seq() uint64 { return s.seq }

// Busy reports whether input should be disabled.
func (s State) Busy() bool { return s.phase.Busy() }

// stateJSON is the wire form of a State.
type stateJSON struct {
	Phase  string             `json:"phase"`
	URL    string             `json:"url,omitempty"`
	Seq    uint64             `json:"seq"`
	Error  string             `json:"error,omitempty"`
	Result *model.AuditResult `json:"result,omitempty"`
}

// MarshalJSON encodes the state as {phase, url, seq, error, result}.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{
		Phase:  s.phase.String(),
		URL:    s.url,
		Seq:    s.seq,
		Error:  s.Message(),
		Result: s.result,
	})
}
