package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/webaudit/internal/display"
	"github.com/nao1215/webaudit/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs one report.
func (w *MarkdownWriter) Write(report *Report) (int, error) {
	return w.WriteAll([]*Report{report})
}

// WriteAll outputs the reports as one document, one section per URL.
func (w *MarkdownWriter) WriteAll(reports []*Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Web Audit Report")
	md.PlainText("")

	for i, r := range reports {
		if i > 0 {
			md.HorizontalRule()
			md.PlainText("")
		}
		w.writeReport(md, r)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeReport(md *markdown.Markdown, report *Report) {
	md.H2(report.URL)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Analyzed At", report.AnalyzedAt.Format(timeLayout)},
			{"Status", statusText(report)},
		},
	})
	md.PlainText("")

	if report.Failed() {
		md.Cautionf("%s", report.Error)
		md.PlainText("")
		return
	}

	view := display.NewReportView(report.Result)
	w.writeScores(md, view)
	w.writeAlert(md, view)
	w.writeIssues(md, view)
}

func statusText(report *Report) string {
	if report.Failed() {
		return "❌ Error"
	}
	return "✅ Complete"
}

func tierEmoji(t display.Tier) string {
	switch t {
	case display.TierGood:
		return "🟢"
	case display.TierWarn:
		return "🟡"
	default:
		return "🔴"
	}
}

func impactEmoji(i model.Impact) string {
	switch i {
	case model.ImpactHigh:
		return "🔴"
	case model.ImpactMedium:
		return "🟡"
	default:
		return "🔵"
	}
}

func (w *MarkdownWriter) writeScores(md *markdown.Markdown, view display.ReportView) {
	md.PlainText("### Scores")
	md.PlainText("")

	rows := make([][]string, 0, len(view.Gauges))
	for _, g := range view.Gauges {
		rows = append(rows, []string{
			g.Title,
			strconv.Itoa(g.Score),
			tierEmoji(g.Tier) + " " + g.Tier.String(),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Score", "Rating"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, view display.ReportView) {
	high := view.ImpactCounts[model.ImpactHigh]
	medium := view.ImpactCounts[model.ImpactMedium]

	switch {
	case high > 0:
		md.Cautionf("%d high impact issue(s) need attention.", high)
	case medium > 0:
		md.Warningf("%d medium impact issue(s) found.", medium)
	case !view.Empty:
		md.Note("Only low impact issues found.")
	default:
		md.Tip(display.NoIssuesTitle + " " + display.NoIssuesSubtitle)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeIssues(md *markdown.Markdown, view display.ReportView) {
	md.PlainText("### Issues (" + view.CountLabel + ")")
	md.PlainText("")

	if view.Empty {
		md.PlainText(display.NoIssuesTitle)
		md.PlainText("")
		return
	}

	w.writePieChart(md, view)

	rows := make([][]string, len(view.Issues))
	for i, issue := range view.Issues {
		rows[i] = []string{
			strconv.Itoa(issue.Index + 1),
			impactEmoji(issue.Impact) + " " + issue.Impact.String(),
			issue.TypeLabel,
			escapeCell(issue.Title),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Impact", "Type", "Title"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, issue := range view.Issues {
		md.Details(issue.Title, issueDetails(issue))
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, view display.ReportView) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Issues by Impact"),
		piechart.WithShowData(true),
	)
	for _, impact := range model.Impacts() {
		if n := view.ImpactCounts[impact]; n > 0 {
			chart.LabelAndIntValue(impact.String(), uint64(n)) //nolint:gosec // n is positive
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func issueDetails(issue display.IssueView) string {
	var sb strings.Builder
	sb.WriteString("**Reason:** " + issue.Reason + "\n\n")
	sb.WriteString("**Fix:** " + issue.Fix)
	if issue.HasHelpURL() {
		sb.WriteString("\n\n[Learn more](" + issue.HelpURL + ")")
	}
	return sb.String()
}

// escapeCell keeps pipes in free-form text from breaking table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by webaudit*")
}
