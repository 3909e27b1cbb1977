package audit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nao1215/webaudit/internal/client"
	"github.com/nao1215/webaudit/internal/model"
)

// TestUserMessage tests the mapping from failures to user-facing messages.
func TestUserMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", &ValidationError{URL: "x"}, InvalidURLMessage},
		{"remote", &client.RemoteRequestError{StatusCode: 404}, AnalysisFailedMessage},
		{"wrapped remote", fmt.Errorf("analyze: %w", &client.RemoteRequestError{StatusCode: 500}), AnalysisFailedMessage},
		{"malformed", &model.MalformedResponseError{Field: "summary", Reason: "missing"}, AnalysisFailedMessage},
		{"transport", &client.TransportError{Err: errors.New("i/o timeout")}, "i/o timeout"},
		{"empty transport", &client.TransportError{}, FallbackMessage},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := UserMessage(tc.err); got != tc.want {
				t.Errorf("UserMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

// TestPhase tests the phase helpers.
func TestPhase(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		phase    Phase
		name     string
		busy     bool
		terminal bool
	}{
		{PhaseIdle, "idle", false, false},
		{PhaseValidating, "validating", true, false},
		{PhaseRequesting, "requesting", true, false},
		{PhaseSuccess, "success", false, true},
		{PhaseError, "error", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.phase.String() != tc.name {
				t.Errorf("String() = %q, want %q", tc.phase.String(), tc.name)
			}
			if tc.phase.Busy() != tc.busy {
				t.Errorf("Busy() = %v, want %v", tc.phase.Busy(), tc.busy)
			}
			if tc.phase.Terminal() != tc.terminal {
				t.Errorf("Terminal() = %v, want %v", tc.phase.Terminal(), tc.terminal)
			}
		})
	}
}
