// Package display maps audit results to their visual encodings.
//
// It contains two groups of pure functions and one small piece of state:
//   - Gauge functions: score to color tier and circular-gauge geometry
//   - Issue functions: issue to icon category, impact to badge style
//   - Accordion: single-select expand/collapse of issue details
//
// Every front end (terminal report writers and the web UI) goes through
// this package, so a score renders with the same tier everywhere.
package display
