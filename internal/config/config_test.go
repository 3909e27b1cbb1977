package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies the defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig("1.2.3")

	t.Run("default Endpoint is the hosted service", func(t *testing.T) {
		t.Parallel()
		if cfg.Endpoint != "https://webaudithq.onrender.com/api/analyze" {
			t.Errorf("unexpected endpoint %q", cfg.Endpoint)
		}
	})

	t.Run("default Timeout is 120 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 120*time.Second {
			t.Errorf("expected Timeout to be 120s, got %v", cfg.Timeout)
		}
	})

	t.Run("default BatchSize is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 4 {
			t.Errorf("expected BatchSize to be 4, got %d", cfg.BatchSize)
		}
	})

	t.Run("default ListenAddress is loopback", func(t *testing.T) {
		t.Parallel()
		if cfg.ListenAddress != "127.0.0.1:8080" {
			t.Errorf("unexpected listen address %q", cfg.ListenAddress)
		}
	})

	t.Run("default UserAgent carries the version", func(t *testing.T) {
		t.Parallel()
		if cfg.UserAgent != "webaudit/1.2.3" {
			t.Errorf("unexpected user agent %q", cfg.UserAgent)
		}
	})

	t.Run("no proxy by default", func(t *testing.T) {
		t.Parallel()
		if cfg.ProxyAddress != "" {
			t.Errorf("expected no proxy, got %q", cfg.ProxyAddress)
		}
	})

	t.Run("empty version yields bare user agent", func(t *testing.T) {
		t.Parallel()
		if got := DefaultUserAgent(""); got != "webaudit" {
			t.Errorf("unexpected user agent %q", got)
		}
	})
}

// TestConfigValidate tests the validation rules. Each case breaks one rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig("test")
		cfg.Targets = []string{"https://example.com"}
		return cfg
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		validate func(*Config) error
		want     error
	}{
		{"valid analyze config", func(*Config) {}, (*Config).ValidateAnalyze, nil},
		{"valid serve config", func(*Config) {}, (*Config).ValidateServe, nil},
		{"invalid target is not a config error", func(c *Config) { c.Targets = []string{"not a url"} }, (*Config).ValidateAnalyze, nil},
		{"no targets", func(c *Config) { c.Targets = nil }, (*Config).ValidateAnalyze, ErrNoTarget},
		{"serve needs no targets", func(c *Config) { c.Targets = nil }, (*Config).ValidateServe, nil},
		{"ftp endpoint", func(c *Config) { c.Endpoint = "ftp://example.com" }, (*Config).Validate, ErrInvalidEndpoint},
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }, (*Config).ValidateServe, ErrInvalidEndpoint},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, (*Config).Validate, ErrInvalidTimeout},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, (*Config).ValidateAnalyze, ErrInvalidTimeout},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, (*Config).ValidateAnalyze, ErrInvalidBatchSize},
		{"json and markdown", func(c *Config) { c.JSONReport, c.MarkdownReport = true, true }, (*Config).ValidateAnalyze, ErrConflictingReportFormats},
		{"json only", func(c *Config) { c.JSONReport = true }, (*Config).ValidateAnalyze, nil},
		{"checksum without file", func(c *Config) { c.WriteChecksum = true }, (*Config).ValidateAnalyze, ErrChecksumWithoutFile},
		{"checksum with file", func(c *Config) { c.WriteChecksum, c.ReportFile = true, "out.md" }, (*Config).ValidateAnalyze, nil},
		{"proxy without port", func(c *Config) { c.ProxyAddress = "127.0.0.1" }, (*Config).Validate, ErrInvalidProxyAddress},
		{"proxy without host", func(c *Config) { c.ProxyAddress = ":1080" }, (*Config).Validate, ErrInvalidProxyAddress},
		{"valid proxy", func(c *Config) { c.ProxyAddress = "127.0.0.1:1080" }, (*Config).Validate, nil},
		{"listen on all interfaces", func(c *Config) { c.ListenAddress = ":8080" }, (*Config).ValidateServe, nil},
		{"listen port out of range", func(c *Config) { c.ListenAddress = "127.0.0.1:70000" }, (*Config).ValidateServe, ErrInvalidListenAddress},
		{"listen without port", func(c *Config) { c.ListenAddress = "localhost" }, (*Config).ValidateServe, ErrInvalidListenAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := tt.validate(cfg)
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		f, err := LoadConfigFile("/nonexistent/path/.webaudit")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if f != nil {
			t.Error("expected nil file when not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".webaudit")
		content := `endpoint: https://audit.internal/api/analyze
timeout: 45s
proxy: 127.0.0.1:1080
userAgent: custom-agent
batch: 8
listen: 0.0.0.0:9000
headers:
  X-Team: web
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		f, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Endpoint != "https://audit.internal/api/analyze" {
			t.Errorf("unexpected endpoint %q", f.Endpoint)
		}
		if f.Timeout != 45*time.Second {
			t.Errorf("expected 45s timeout, got %v", f.Timeout)
		}
		if f.Batch != 8 {
			t.Errorf("expected batch 8, got %d", f.Batch)
		}
		if f.Headers["X-Team"] != "web" {
			t.Errorf("expected X-Team header, got %v", f.Headers)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".webaudit")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFileApply tests that only set fields override the config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	cfg := NewConfig("test")
	cfg.Headers["X-Keep"] = "yes"

	f := &File{
		Timeout: 30 * time.Second,
		Headers: map[string]string{"X-Team": "web"},
		Batch:   2,
	}
	f.Apply(cfg)

	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected timeout override, got %v", cfg.Timeout)
	}
	if cfg.BatchSize != 2 {
		t.Errorf("expected batch override, got %d", cfg.BatchSize)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("expected endpoint unchanged, got %q", cfg.Endpoint)
	}
	if cfg.Headers["X-Keep"] != "yes" || cfg.Headers["X-Team"] != "web" {
		t.Errorf("expected merged headers, got %v", cfg.Headers)
	}
}

// TestLoad tests config file resolution through Load.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig("test")
		cfg.ConfigFilePath = filepath.Join(t.TempDir(), "missing.yaml")
		if err := Load(cfg); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("explicit file is applied", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("listen: 127.0.0.1:9999\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg := NewConfig("test")
		cfg.ConfigFilePath = path
		if err := Load(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ListenAddress != "127.0.0.1:9999" {
			t.Errorf("expected listen override, got %q", cfg.ListenAddress)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("batch: 1"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("finds .webaudit in the current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("batch: 1"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		t.Chdir(dir)

		want := filepath.Join(dir, DefaultConfigFile)
		if result := FindConfigFile(""); result != want {
			t.Errorf("expected %q, got %q", want, result)
		}
	})
}

// TestXDGConfigDir tests the XDG config directory.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if dir == "" {
		t.Fatal("expected non-empty XDG config dir")
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("expected dir to end in %q, got %q", AppName, dir)
	}
}
