// Package config holds the settings of webaudit and resolves them from
// defaults, a YAML configuration file, the environment and CLI flags, in
// increasing order of precedence.
package config
