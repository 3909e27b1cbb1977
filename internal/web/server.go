package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/webaudit/internal/audit"
	"github.com/nao1215/webaudit/internal/display"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const (
	// DefaultRateLimit is the sustained number of submissions per second
	// allowed for one client.
	DefaultRateLimit = 2.0
	// DefaultRateBurst is the number of submissions a client may make
	// back to back.
	DefaultRateBurst = 5.0

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server serves the audit page for a single Lifecycle.
type Server struct {
	lc      *audit.Lifecycle
	engine  *gin.Engine
	hub     *Hub
	limiter *RateLimiter
	logger  *slog.Logger

	// baseCtx outlives requests; submissions run under it.
	baseCtx context.Context
	cancel  context.CancelFunc

	// mu guards the view state below. Both parts belong to one
	// submission, identified by its sequence number.
	mu           sync.Mutex
	accordion    display.Accordion
	accordionSeq uint64
	scrollSeq    uint64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for requests and lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRateLimit limits POST /analyze to rate submissions per second with
// the given burst per client.
func WithRateLimit(rate, burst float64) Option {
	return func(s *Server) {
		s.limiter = NewRateLimiter(rate, burst)
	}
}

// New creates a Server that submits audits to analyzer.
// Close must be called to release the background goroutines.
func New(analyzer audit.Analyzer, opts ...Option) (*Server, error) {
	s := &Server{
		logger:  slog.Default(),
		limiter: NewRateLimiter(DefaultRateLimit, DefaultRateBurst),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.baseCtx, s.cancel = context.WithCancel(context.Background())
	s.lc = audit.NewLifecycle(analyzer,
		audit.WithLogger(s.logger),
		audit.WithSuccessHook(s.onSuccess),
	)

	initial, err := json.Marshal(s.lc.State())
	if err != nil {
		s.cancel()
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	s.hub = NewHub(s.logger, initial)
	go s.hub.Run(s.baseCtx)
	s.lc.Subscribe(s.onTransition)

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		s.cancel()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s.engine = s.routes(tmpl)
	return s, nil
}

// Lifecycle returns the lifecycle driven by the server.
func (s *Server) Lifecycle() *audit.Lifecycle {
	return s.lc
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Close cancels the in-flight audit and disconnects WebSocket clients.
func (s *Server) Close() {
	s.lc.Reset()
	s.cancel()
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}
	return nil
}

func (s *Server) routes(tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(s.logger), RequestLogger(s.logger))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.handleIndex)
	r.POST("/analyze", s.limiter.RateLimit(), s.handleAnalyze)
	r.POST("/reset", s.handleReset)
	r.POST("/issues/:index/toggle", s.handleToggle)

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/state", s.handleState)
	api.GET("/events", s.handleEvents)

	return r
}

// onSuccess marks the results of seq to be scrolled into view on the
// next render.
func (s *Server) onSuccess(state audit.State) {
	s.mu.Lock()
	s.scrollSeq = state.Seq()
	s.mu.Unlock()
}

// onTransition pushes every state to WebSocket clients.
func (s *Server) onTransition(state audit.State) {
	data, err := json.Marshal(state)
	if err != nil {
		s.logger.Warn("failed to encode state", "error", err)
		return
	}
	s.hub.Broadcast(data)
}

// accordionFor returns the accordion of submission seq, collapsing it
// when it still belongs to an earlier submission. s.mu must be held.
func (s *Server) accordionFor(seq uint64) *display.Accordion {
	if s.accordionSeq != seq {
		s.accordion.Collapse()
		s.accordionSeq = seq
	}
	return &s.accordion
}
