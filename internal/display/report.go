package display

import "github.com/nao1215/webaudit/internal/model"

// IssueView is an Issue together with its presentation attributes.
type IssueView struct {
	// Index is the position of the issue in the delivered order.
	Index int

	model.Issue

	Category  Category
	Icon      string
	TypeLabel string
	Badge     string
}

// ReportView is the presentation of a whole AuditResult.
type ReportView struct {
	Gauges []MetricGauge

	// Issues keeps the exact order delivered by the audit service.
	Issues []IssueView

	// CountLabel is derived from Summary.TotalIssues as reported.
	CountLabel string

	// Empty is true when the result has no issues; front ends then show
	// the "no issues detected" state instead of the issue list.
	Empty bool

	// WorstTier is the lowest tier among the four gauges.
	WorstTier Tier

	// ImpactCounts counts delivered issues per impact tier.
	ImpactCounts map[model.Impact]int
}

// NewReportView builds the presentation of a result. Issues are neither
// sorted, filtered nor grouped.
func NewReportView(result *model.AuditResult) ReportView {
	gauges := SummaryGauges(result.Summary)

	issues := make([]IssueView, len(result.Issues))
	counts := make(map[model.Impact]int, len(model.Impacts()))
	for i, issue := range result.Issues {
		category := Categorize(issue)
		issues[i] = IssueView{
			Index:     i,
			Issue:     issue,
			Category:  category,
			Icon:      category.Icon(),
			TypeLabel: TypeLabel(issue),
			Badge:     BadgeStyle(issue.Impact),
		}
		counts[issue.Impact]++
	}

	return ReportView{
		Gauges:       gauges,
		Issues:       issues,
		CountLabel:   IssueCountLabel(result.Summary.TotalIssues),
		Empty:        !result.HasIssues(),
		WorstTier:    WorstTier(gauges),
		ImpactCounts: counts,
	}
}
