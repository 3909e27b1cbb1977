// Package report renders audit outcomes for the terminal front end.
//
// Writers:
//   - SimpleWriter: plain text for terminals, with ASCII score bars
//   - MarkdownWriter: GitHub Flavored Markdown with tables, alerts and a
//     mermaid pie chart of issue impacts
//   - JSONWriter: structured output for tool integration
//
// All writers present issues in the order the audit service delivered
// them and use the display package for tiers, categories and labels, so
// terminal output matches the web UI.
package report
