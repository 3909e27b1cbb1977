// Package log provides the application's slog setup with automatic
// redaction of sensitive values.
//
// The SecureHandler wraps any slog.Handler and masks:
//   - attributes whose key names a credential (Authorization, Cookie,
//     X-Api-Key, password, token and similar)
//   - string values that look like credentials (bearer and basic auth
//     headers, JWTs, long API keys)
//   - userinfo and credential query parameters inside URL values, so an
//     audited URL such as https://user:pw@example.com/?token=abc is logged
//     as https://***REDACTED***@example.com/?token=***REDACTED***
//
// Redaction applies in verbose mode too.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("requesting audit", "url", target)
package log
