package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/nao1215/webaudit/internal/model"
)

// Analyzer performs one call to the audit service.
// *client.Client implements it.
type Analyzer interface {
	Analyze(ctx context.Context, req model.AuditRequest) (*model.AuditResult, error)
}

// Lifecycle drives submissions through the audit state machine.
// All methods are safe for concurrent use.
type Lifecycle struct {
	analyzer  Analyzer
	logger    *slog.Logger
	onSuccess func(State)

	// mu guards every field below.
	mu          sync.Mutex
	state       State
	seq         uint64
	cancel      context.CancelFunc
	subscribers []subscriber
	nextSubID   uint64

	// pending holds committed states not yet delivered to subscribers.
	// While notifying is set, one goroutine is draining it in order.
	pending   []notification
	notifying bool
}

type subscriber struct {
	id uint64
	fn func(State)
}

type notification struct {
	state State
	subs  []subscriber
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithLogger sets the logger for transition and failure diagnostics.
func WithLogger(logger *slog.Logger) LifecycleOption {
	return func(l *Lifecycle) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSuccessHook registers fn to run each time the lifecycle enters
// PhaseSuccess. It runs before the new state is visible to State or to
// subscribers, with the lifecycle locked, so fn must not call back into
// the Lifecycle.
func WithSuccessHook(fn func(State)) LifecycleOption {
	return func(l *Lifecycle) {
		l.onSuccess = fn
	}
}

// NewLifecycle returns a Lifecycle in PhaseIdle.
func NewLifecycle(analyzer Analyzer, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{
		analyzer: analyzer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns a snapshot of the current state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Busy reports whether a submission is being validated or requested.
func (l *Lifecycle) Busy() bool {
	return l.State().Busy()
}

// Subscribe registers fn to be called with every committed state, in
// commit order. fn runs without the lifecycle locked, on a goroutine that
// committed a state, and may call State. Calls to fn never overlap. When
// commits race, the state may already have moved on by the time fn sees
// it. The returned function removes the subscription.
func (l *Lifecycle) Subscribe(fn func(State)) (unsubscribe func()) {
	l.mu.Lock()
	l.nextSubID++
	id := l.nextSubID
	l.subscribers = append(l.subscribers, subscriber{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, s := range l.subscribers {
				if s.id == id {
					l.subscribers = append(l.subscribers[:i:i], l.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// Submission is a handle to one submitted URL.
type Submission struct {
	seq   uint64
	done  chan struct{}
	state State
	err   error
}

func newSubmission(seq uint64) *Submission {
	return &Submission{seq: seq, done: make(chan struct{})}
}

func (s *Submission) finish(state State, err error) {
	s.state = state
	s.err = err
	close(s.done)
}

// Seq returns the sequence number assigned to the submission.
func (s *Submission) Seq() uint64 { return s.seq }

// Done is closed when the submission reached a terminal state or was
// superseded.
func (s *Submission) Done() <-chan struct{} { return s.done }

// Wait blocks until the submission completes. It returns the terminal
// state together with the classified failure, or ErrSuperseded when a
// newer submission or Reset replaced it.
func (s *Submission) Wait() (State, error) {
	<-s.done
	return s.state, s.err
}

// Submit submits rawURL and waits for the outcome. See Start.
func (l *Lifecycle) Submit(ctx context.Context, rawURL string) (State, error) {
	return l.Start(ctx, rawURL).Wait()
}

// Start submits rawURL and returns without waiting for the audit service.
//
// Any prior result or error is discarded and any in-flight request is
// cancelled. An invalid URL moves the lifecycle to PhaseError without a
// network call; the returned Submission is then already done. Otherwise
// the request runs in its own goroutine under ctx.
func (l *Lifecycle) Start(ctx context.Context, rawURL string) *Submission {
	l.mu.Lock()
	l.cancelLocked()
	l.seq++
	seq := l.seq
	sub := newSubmission(seq)
	l.commitAndUnlock(State{phase: PhaseValidating, url: rawURL, seq: seq})

	if !model.IsValidURL(rawURL) {
		err := &ValidationError{URL: rawURL}
		l.mu.Lock()
		if l.seq != seq {
			l.mu.Unlock()
			sub.finish(State{}, ErrSuperseded)
			return sub
		}
		state := State{phase: PhaseError, url: rawURL, err: err, seq: seq}
		l.commitAndUnlock(state)
		l.logger.Debug("rejected invalid URL", slog.Uint64("seq", seq))
		sub.finish(state, err)
		return sub
	}

	reqCtx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	if l.seq != seq {
		l.mu.Unlock()
		cancel()
		sub.finish(State{}, ErrSuperseded)
		return sub
	}
	l.cancel = cancel
	l.commitAndUnlock(State{phase: PhaseRequesting, url: rawURL, seq: seq})

	go l.request(reqCtx, cancel, sub, rawURL)

	return sub
}

// request performs the outbound call of submission sub and commits its
// outcome unless the submission has been superseded meanwhile.
func (l *Lifecycle) request(ctx context.Context, cancel context.CancelFunc, sub *Submission, rawURL string) {
	defer cancel()

	l.logger.Info("requesting audit", slog.String("url", rawURL), slog.Uint64("seq", sub.seq))
	result, err := l.analyzer.Analyze(ctx, model.NewAuditRequest(rawURL))

	l.mu.Lock()
	if l.seq != sub.seq {
		l.mu.Unlock()
		l.logger.Debug("discarded superseded response", slog.Uint64("seq", sub.seq))
		sub.finish(State{}, ErrSuperseded)
		return
	}
	l.cancel = nil

	if err != nil {
		state := State{phase: PhaseError, url: rawURL, err: err, seq: sub.seq}
		l.commitAndUnlock(state)
		l.logFailure(rawURL, err)
		sub.finish(state, err)
		return
	}

	state := State{phase: PhaseSuccess, url: rawURL, result: result, seq: sub.seq}
	if l.onSuccess != nil {
		l.onSuccess(state)
	}
	l.commitAndUnlock(state)

	if result.CountMismatch() {
		l.logger.Warn("audit service reported an inconsistent issue count",
			slog.String("url", rawURL),
			slog.Int("total_issues", result.Summary.TotalIssues),
			slog.Int("issues", len(result.Issues)))
	}
	l.logger.Info("audit completed", slog.String("url", rawURL), slog.Int("issues", len(result.Issues)))

	sub.finish(state, nil)
}

// logFailure records the detailed cause of a failure; the state only
// carries the user-facing message.
func (l *Lifecycle) logFailure(rawURL string, err error) {
	var malformed *model.MalformedResponseError
	if errors.As(err, &malformed) {
		l.logger.Warn("audit service returned a malformed response",
			slog.String("url", rawURL),
			slog.String("field", malformed.Field),
			slog.String("reason", malformed.Reason))
		return
	}
	l.logger.Warn("audit failed", slog.String("url", rawURL), slog.Any("error", err))
}

// Reset returns the lifecycle to PhaseIdle and cancels any in-flight
// request. The cancelled submission completes with ErrSuperseded.
func (l *Lifecycle) Reset() {
	l.mu.Lock()
	l.cancelLocked()
	l.seq++
	l.commitAndUnlock(State{phase: PhaseIdle, seq: l.seq})
}

// cancelLocked cancels the in-flight request, if any. l.mu must be held.
func (l *Lifecycle) cancelLocked() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// commitAndUnlock stores next as the current state, queues it for the
// subscribers and releases l.mu, which must be held on entry. If no other
// goroutine is delivering notifications, the caller drains the queue
// itself, so a single committer has delivered its state when this returns.
func (l *Lifecycle) commitAndUnlock(next State) {
	l.state = next
	subs := make([]subscriber, len(l.subscribers))
	copy(subs, l.subscribers)
	l.pending = append(l.pending, notification{state: next, subs: subs})

	l.logger.Debug("state changed",
		slog.String("phase", next.phase.String()),
		slog.Uint64("seq", next.seq))

	if l.notifying {
		l.mu.Unlock()
		return
	}
	l.notifying = true
	l.mu.Unlock()

	for {
		l.mu.Lock()
		batch := l.pending
		l.pending = nil
		if len(batch) == 0 {
			l.notifying = false
			l.mu.Unlock()
			return
		}
		l.mu.Unlock()

		for _, n := range batch {
			for _, sub := range n.subs {
				sub.fn(n.state)
			}
		}
	}
}
