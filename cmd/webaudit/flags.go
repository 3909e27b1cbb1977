package main

import (
	"fmt"

	"github.com/nao1215/webaudit/internal/config"
	"github.com/spf13/cobra"
)

// dotenvFile is read for environment overrides when present.
const dotenvFile = ".env"

// addServiceFlags registers the flags shared by analyze and serve.
func addServiceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("endpoint", "e", config.DefaultEndpoint,
		"Audit service endpoint")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for one audit request")
	cmd.Flags().String("proxy", "",
		"Route audit requests through a SOCKS5 proxy (host:port)")
	cmd.Flags().StringToStringP("header", "H", nil,
		"Extra request header as Name=Value (repeatable)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webaudit in current or home directory)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig layers defaults, the configuration file, the environment
// and finally the flags that were set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig(getVersion())
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	lookup, err := config.EnvLookup(dotenvFile)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, lookup); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		if cfg.Endpoint, err = flags.GetString("endpoint"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("header") {
		headers, err := flags.GetStringToString("header")
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			cfg.Headers[k] = v
		}
	}

	return cfg, nil
}
