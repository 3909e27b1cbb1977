package audit

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs a BatchRunner analyzes at once
// unless configured otherwise.
const DefaultConcurrency = 4

// BatchRunner analyzes several URLs concurrently. Each URL gets its own
// Lifecycle from the factory, so submissions never supersede each other.
type BatchRunner struct {
	newLifecycle func() *Lifecycle
	concurrency  int
	logger       *slog.Logger
}

// BatchOption configures a BatchRunner.
type BatchOption func(*BatchRunner)

// WithConcurrency sets the maximum number of concurrent audits.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchRunner) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets the logger for batch-level progress.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchRunner) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBatchRunner creates a BatchRunner. newLifecycle is called once per URL.
func NewBatchRunner(newLifecycle func() *Lifecycle, opts ...BatchOption) *BatchRunner {
	b := &BatchRunner{
		newLifecycle: newLifecycle,
		concurrency:  DefaultConcurrency,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Concurrency returns the configured concurrency limit.
func (b *BatchRunner) Concurrency() int {
	return b.concurrency
}

// Run audits every URL and calls callback with the terminal state and the
// URL's index in urls. callback runs on the audit's goroutine and must be
// safe for concurrent use. A failed audit does not stop the batch; Run
// returns an error only when ctx is cancelled.
func (b *BatchRunner) Run(ctx context.Context, urls []string, callback func(state State, index int)) error {
	b.logger.Info("starting batch audit",
		"total_urls", len(urls),
		"concurrency", b.concurrency,
	)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, rawURL := range urls {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			state, err := b.newLifecycle().Submit(ctx, rawURL)
			if err != nil {
				b.logger.Warn("audit failed",
					"index", i+1,
					"total", len(urls),
					"message", UserMessage(err),
				)
			}
			callback(state, i)
			return nil
		})
	}

	err := g.Wait()

	b.logger.Info("batch audit complete",
		"total_urls", len(urls),
		"elapsed", time.Since(start),
	)
	return err
}

// Collect audits every URL and returns the terminal states in input order.
// Entries for URLs that were never started because ctx was cancelled hold
// the zero State.
func (b *BatchRunner) Collect(ctx context.Context, urls []string) ([]State, error) {
	states := make([]State, len(urls))
	err := b.Run(ctx, urls, func(state State, index int) {
		states[index] = state
	})
	return states, err
}
