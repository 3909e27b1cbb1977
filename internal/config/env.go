package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvEndpoint = "WEBAUDIT_ENDPOINT"
	EnvTimeout  = "WEBAUDIT_TIMEOUT"
	EnvProxy    = "WEBAUDIT_PROXY"
	EnvListen   = "WEBAUDIT_LISTEN"
)

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a LookupFunc over the process environment, falling
// back to the given .env files. Process variables win over file values.
// Missing .env files are ignored; the process environment is never
// modified.
func EnvLookup(dotenvPaths ...string) (LookupFunc, error) {
	fileVars := make(map[string]string)
	for _, path := range dotenvPaths {
		vars, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, v := range vars {
			if _, ok := fileVars[k]; !ok {
				fileVars[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides settings of c from the environment.
func ApplyEnv(c *Config, lookup LookupFunc) error {
	if v, ok := lookup(EnvEndpoint); ok && v != "" {
		c.Endpoint = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidTimeout, EnvTimeout, v)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvProxy); ok && v != "" {
		c.ProxyAddress = v
	}
	if v, ok := lookup(EnvListen); ok && v != "" {
		c.ListenAddress = v
	}
	return nil
}
