package config

import (
	"net"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/webaudit/internal/client"
	"github.com/nao1215/webaudit/internal/model"
)

// Default configuration values.
const (
	// DefaultEndpoint is the hosted audit service.
	DefaultEndpoint = client.DefaultEndpoint

	// DefaultTimeout covers a full remote audit, which loads the target
	// page in a headless browser and can take well over a minute.
	DefaultTimeout = 120 * time.Second

	// DefaultBatchSize is the number of URLs analyzed concurrently.
	DefaultBatchSize = 4

	// DefaultListenAddress is where `webaudit serve` listens.
	DefaultListenAddress = "127.0.0.1:8080"

	// AppName is the application name used for XDG directory paths.
	AppName = "webaudit"
)

// Config holds all settings of one webaudit invocation. It is built once
// from defaults, file, environment and flags, then passed down explicitly.
type Config struct {
	// Endpoint is the audit service URL that receives POST requests.
	Endpoint string

	// Timeout bounds one request to the audit service.
	Timeout time.Duration

	// ProxyAddress routes audit requests through a SOCKS5 proxy
	// ("host:port"). Empty means direct.
	ProxyAddress string

	// Headers are extra static headers sent to the audit service.
	Headers map[string]string

	// UserAgent is sent as the User-Agent header.
	UserAgent string

	// Verbose enables debug logging.
	Verbose bool

	// BatchSize is the number of URLs analyzed concurrently.
	BatchSize int

	// ConfigFilePath is the explicit configuration file, if any.
	ConfigFilePath string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// WriteChecksum writes a SHA3-256 checksum next to ReportFile.
	WriteChecksum bool

	// Targets are the URLs to analyze. They are validated per submission,
	// so an invalid URL yields an Error report rather than a config error.
	Targets []string

	// ListenAddress is the address of the web front end.
	ListenAddress string
}

// NewConfig returns a Config holding the defaults. version is embedded in
// the default User-Agent as "webaudit/<version>".
func NewConfig(version string) *Config {
	return &Config{
		Endpoint:      DefaultEndpoint,
		Timeout:       DefaultTimeout,
		Headers:       make(map[string]string),
		UserAgent:     DefaultUserAgent(version),
		BatchSize:     DefaultBatchSize,
		ListenAddress: DefaultListenAddress,
	}
}

// DefaultUserAgent returns the User-Agent for a build version.
func DefaultUserAgent(version string) string {
	if version == "" {
		return AppName
	}
	return AppName + "/" + version
}

// XDGConfigDir returns the XDG config directory for webaudit.
// On Linux: ~/.config/webaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the settings shared by every command and returns the
// first problem found.
func (c *Config) Validate() error {
	if !model.IsValidURL(c.Endpoint) {
		return ErrInvalidEndpoint
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.ProxyAddress != "" && !isHostPort(c.ProxyAddress, false) {
		return ErrInvalidProxyAddress
	}
	return nil
}

// ValidateAnalyze checks the settings of the analyze command.
func (c *Config) ValidateAnalyze() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.WriteChecksum && c.ReportFile == "" {
		return ErrChecksumWithoutFile
	}
	return nil
}

// ValidateServe checks the settings of the serve command.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !isHostPort(c.ListenAddress, true) {
		return ErrInvalidListenAddress
	}
	return nil
}

// isHostPort reports whether address is "host:port" with a port in
// 1-65535. An empty host is accepted only when allowEmptyHost is set,
// as in ":8080" for listening on all interfaces.
func isHostPort(address string, allowEmptyHost bool) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return false
	}
	if host == "" && !allowEmptyHost {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}
