package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nao1215/webaudit/internal/model"
	"golang.org/x/net/proxy"
)

// DefaultEndpoint is the audit service used when none is configured.
const DefaultEndpoint = "https://webaudithq.onrender.com/api/analyze"

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "webaudit"

// Client sends audit requests to the remote audit service.
// A Client is safe for concurrent use.
type Client struct {
	endpoint     string
	timeout      time.Duration
	proxyAddress string
	headers      map[string]string
	userAgent    string
	logger       *slog.Logger

	rc *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall timeout of one request. Zero means no
// timeout beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithProxy routes all requests through the SOCKS5 proxy at address
// ("host:port"). An empty address disables the proxy.
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithHeaders adds static headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for the given endpoint. The endpoint must be an
// absolute http or https URL. Nothing is dialed until Analyze is called.
func New(endpoint string, opts ...Option) (*Client, error) {
	if !model.IsValidURL(endpoint) {
		return nil, ErrInvalidEndpoint
	}

	c := &Client{
		endpoint:  endpoint,
		headers:   make(map[string]string),
		userAgent: DefaultUserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	httpClient, err := c.newHTTPClient()
	if err != nil {
		return nil, err
	}

	c.rc = resty.NewWithClient(httpClient).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", c.userAgent)
	if c.timeout > 0 {
		c.rc.SetTimeout(c.timeout)
	}

	return c, nil
}

// newHTTPClient builds the underlying HTTP client, dialing through the
// SOCKS5 proxy when one is configured.
func (c *Client) newHTTPClient() (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // DefaultTransport is always *http.Transport

	if c.proxyAddress != "" {
		if !isValidProxyAddress(c.proxyAddress) {
			return nil, ErrInvalidProxyAddress
		}
		dialer, err := proxy.SOCKS5("tcp", c.proxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		// Environment proxies must not bypass the configured SOCKS5 proxy.
		transport.Proxy = nil
		transport.DialContext = dialContext(dialer)
	}

	var rt http.RoundTripper = transport
	if len(c.headers) > 0 {
		rt = &headerInjectingTransport{base: transport, headers: c.headers}
	}

	return &http.Client{Transport: rt}, nil
}

// dialContext adapts a proxy.Dialer to the http.Transport DialContext
// signature. The SOCKS5 dialer from x/net supports contexts natively.
func dialContext(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
}

// isValidProxyAddress reports whether address is "host:port" with a
// non-empty host and a port in 1-65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// Endpoint returns the configured audit endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ProxyAddress returns the configured SOCKS5 proxy address, if any.
func (c *Client) ProxyAddress() string {
	return c.proxyAddress
}

// Analyze performs exactly one POST of req to the audit endpoint.
//
// A 2xx response body is decoded with model.DecodeAuditResult. Any other
// status yields a *RemoteRequestError; failures below HTTP yield a
// *TransportError. There is no retry.
func (c *Client) Analyze(ctx context.Context, req model.AuditRequest) (*model.AuditResult, error) {
	start := time.Now()

	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.endpoint)
	if err != nil {
		c.logger.Debug("audit request failed",
			slog.String("endpoint", c.endpoint),
			slog.String("url", req.URL),
			slog.Any("error", err))
		return nil, &TransportError{Err: unwrapURLError(err)}
	}

	c.logger.Debug("audit response received",
		slog.String("endpoint", c.endpoint),
		slog.String("url", req.URL),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("elapsed", time.Since(start)))

	if !resp.IsSuccess() {
		return nil, &RemoteRequestError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}

	result, err := model.DecodeAuditResult(resp.Body())
	if err != nil {
		return nil, err
	}
	return result, nil
}

// unwrapURLError strips the *url.Error wrapper added by net/http so the
// transport message names the failure rather than repeating the endpoint.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

// headerInjectingTransport adds static headers to every request.
type headerInjectingTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}
	return t.base.RoundTrip(clone)
}
