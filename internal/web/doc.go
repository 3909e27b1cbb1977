// Package web is the browser front end of webaudit.
//
// A Server owns exactly one audit.Lifecycle and renders its state as an
// HTML page: the URL form (disabled while an audit is running), the inline
// error, a loading panel, or the four score gauges followed by the issue
// accordion. POST /analyze and POST /reset are the only handlers that
// drive the lifecycle; every other route reads snapshots of it.
//
// The same state is exposed as JSON at /api/state and pushed to
// WebSocket clients at /api/events on every transition.
package web
