package config

import "errors"

// Configuration validation errors returned by Config.Validate and its
// command-specific variants. Match them with errors.Is.
var (
	// ErrNoTarget is returned when analyze is run without a URL.
	ErrNoTarget = errors.New("no target specified: provide at least one URL")

	// ErrInvalidEndpoint is returned when the audit endpoint is not an
	// absolute http or https URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint: must be an http or https URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are given.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidProxyAddress is returned when the proxy is not "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address: expected host:port")

	// ErrInvalidListenAddress is returned when the web listen address is
	// not "host:port".
	ErrInvalidListenAddress = errors.New("invalid listen address: expected host:port")

	// ErrChecksumWithoutFile is returned when --checksum is given without
	// --output; there is no file to checksum.
	ErrChecksumWithoutFile = errors.New("--checksum requires --output")
)
