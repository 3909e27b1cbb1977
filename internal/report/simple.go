package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/webaudit/internal/display"
)

const (
	lineWidth = 70
	barWidth  = 20
)

// SimpleWriter outputs plain-text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// details prints each issue's reason, fix and help link.
	details bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithDetails controls whether issue reasons, fixes and help links are
// printed. They are printed by default.
func WithDetails(details bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.details = details
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		details:    true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs one report.
func (w *SimpleWriter) Write(report *Report) (int, error) {
	var sb strings.Builder
	w.writeReport(&sb, report)
	return io.WriteString(w.output, sb.String())
}

// WriteAll outputs the reports one after another.
func (w *SimpleWriter) WriteAll(reports []*Report) (int, error) {
	var sb strings.Builder
	for _, r := range reports {
		w.writeReport(&sb, r)
	}
	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeReport(sb *strings.Builder, report *Report) {
	w.writeHeader(sb, report)
	if report.Failed() {
		return
	}

	view := display.NewReportView(report.Result)
	w.writeScores(sb, view)
	w.writeIssues(sb, view)
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("                          WEBAUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "URL:          %s\n", report.URL)
	fmt.Fprintf(sb, "Analyzed At:  %s\n", report.AnalyzedAt.Format(timeLayout))
	if report.Failed() {
		fmt.Fprintf(sb, "Status:       ERROR - %s\n", report.Error)
	} else {
		sb.WriteString("Status:       Complete\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeScores(sb *strings.Builder, view display.ReportView) {
	w.writeSection(sb, "SCORES")
	for _, g := range view.Gauges {
		fmt.Fprintf(sb, "  %-16s %3d  %s  %s\n", g.Title, g.Score, scoreBar(g.Score), strings.ToUpper(g.Tier.String()))
	}
	sb.WriteString("\n")
}

// scoreBar renders a score as a fixed-width ASCII bar.
func scoreBar(score int) string {
	filled := score * barWidth / 100
	filled = max(0, min(filled, barWidth))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func (w *SimpleWriter) writeIssues(sb *strings.Builder, view display.ReportView) {
	w.writeSection(sb, fmt.Sprintf("ISSUES (%s)", view.CountLabel))

	if view.Empty {
		fmt.Fprintf(sb, "  %s %s\n\n", display.NoIssuesTitle, display.NoIssuesSubtitle)
		return
	}

	for _, issue := range view.Issues {
		fmt.Fprintf(sb, "  %d. [%s] %s (%s)\n",
			issue.Index+1, strings.ToUpper(issue.Impact.String()), issue.Title, issue.TypeLabel)
		if !w.details {
			continue
		}
		fmt.Fprintf(sb, "     Reason: %s\n", issue.Reason)
		fmt.Fprintf(sb, "     Fix:    %s\n", issue.Fix)
		if issue.HasHelpURL() {
			fmt.Fprintf(sb, "     Help:   %s\n", issue.HelpURL)
		}
		sb.WriteString("\n")
	}
	if !w.details {
		sb.WriteString("\n")
	}
}
