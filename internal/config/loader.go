package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name searched for in the
// current and home directories.
const DefaultConfigFile = ".webaudit"

// XDGConfigFile is the configuration file name inside XDGConfigDir.
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the YAML configuration file. Zero fields leave
// the corresponding setting unchanged.
type File struct {
	// Endpoint is the audit service URL.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Timeout is a Go duration such as "90s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Proxy is a SOCKS5 proxy address ("host:port").
	Proxy string `yaml:"proxy,omitempty"`

	// Headers are extra headers sent to the audit service.
	Headers map[string]string `yaml:"headers,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Batch is the number of URLs analyzed concurrently.
	Batch int `yaml:"batch,omitempty"`

	// Listen is the web front end address.
	Listen string `yaml:"listen,omitempty"`
}

// Apply copies the non-zero settings of the file onto c. Headers are
// merged, with file values replacing existing keys.
func (f *File) Apply(c *Config) {
	if f.Endpoint != "" {
		c.Endpoint = f.Endpoint
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.Proxy != "" {
		c.ProxyAddress = f.Proxy
	}
	if len(f.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			c.Headers[k] = v
		}
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.Batch != 0 {
		c.BatchSize = f.Batch
	}
	if f.Listen != "" {
		c.ListenAddress = f.Listen
	}
}

// LoadConfigFile reads a YAML configuration file. A missing file yields
// ErrConfigNotFound so callers can decide whether that is fatal.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// FindConfigFile returns the configuration file to use, or an empty string
// when there is none. The search order is:
//  1. configPath, if given (empty result when it does not exist)
//  2. .webaudit in the current directory
//  3. .webaudit in the home directory
//  4. config.yaml in XDGConfigDir
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), XDGConfigFile))

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load applies the configuration file to c. An explicit path that does
// not exist is an error; a missing file found by search is not.
func Load(c *Config) error {
	path := FindConfigFile(c.ConfigFilePath)
	if path == "" {
		if c.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, c.ConfigFilePath)
		}
		return nil
	}

	f, err := LoadConfigFile(path)
	if err != nil {
		return err
	}
	f.Apply(c)
	return nil
}
