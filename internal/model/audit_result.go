package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Score bounds shared by all four summary metrics.
const (
	MinScore = 0
	MaxScore = 100
)

// AuditResult is the report returned by the audit service for one URL.
// It is held as the current report until a new submission replaces it.
type AuditResult struct {
	// Summary holds the four headline scores and the issue count.
	Summary Summary `json:"summary"`

	// Issues is the list of detected problems, in the order the service
	// delivered them. The order is never changed.
	Issues []Issue `json:"issues"`
}

// Summary holds the headline scores of an audit.
type Summary struct {
	Performance   int `json:"performance"`
	SEO           int `json:"seo"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"bestPractices"`

	// TotalIssues is the issue count reported by the service.
	// It is shown as-is; see AuditResult.CountMismatch.
	TotalIssues int `json:"totalIssues"`
}

// Issue is one detected problem with its explanation and remediation.
type Issue struct {
	// Type is a free-form category label such as "performance" or "seo".
	Type string `json:"type"`

	// Title is a one-line description of the problem.
	Title string `json:"title"`

	// Reason explains the root cause.
	Reason string `json:"reason"`

	// Impact is the severity tier.
	Impact Impact `json:"impact"`

	// Fix describes how to resolve the problem.
	Fix string `json:"fix"`

	// HelpURL links to further documentation. Empty when absent.
	HelpURL string `json:"helpUrl,omitempty"`
}

// HasHelpURL reports whether the issue carries a documentation link.
func (i Issue) HasHelpURL() bool {
	return i.HelpURL != ""
}

// HasIssues reports whether the result contains at least one issue.
// A result without issues is presented as "no issues detected".
func (r *AuditResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// CountMismatch reports whether Summary.TotalIssues disagrees with the
// number of issues actually delivered. The payload is not corrected;
// callers may log the discrepancy.
func (r *AuditResult) CountMismatch() bool {
	return r.Summary.TotalIssues != len(r.Issues)
}

// Validate checks the invariants of an AuditResult built in code.
// DecodeAuditResult performs the same checks on wire payloads.
func (r *AuditResult) Validate() error {
	scores := []struct {
		field string
		value int
	}{
		{"summary.performance", r.Summary.Performance},
		{"summary.seo", r.Summary.SEO},
		{"summary.accessibility", r.Summary.Accessibility},
		{"summary.bestPractices", r.Summary.BestPractices},
	}
	for _, s := range scores {
		if err := checkScore(s.field, s.value); err != nil {
			return err
		}
	}
	if r.Summary.TotalIssues < 0 {
		return newMalformed("summary.totalIssues", "must be non-negative, got %d", r.Summary.TotalIssues)
	}
	for i, issue := range r.Issues {
		if !issue.Impact.Valid() {
			return newMalformed(fmt.Sprintf("issues[%d].impact", i), "unrecognized impact %d", int(issue.Impact))
		}
	}
	return nil
}

// checkScore verifies that a score lies in [MinScore, MaxScore].
func checkScore(field string, value int) error {
	if value < MinScore || value > MaxScore {
		return newMalformed(field, "score %d out of range [%d,%d]", value, MinScore, MaxScore)
	}
	return nil
}

// wireResult mirrors AuditResult with pointer fields so that missing
// and null members can be told apart from zero values.
type wireResult struct {
	Summary *wireSummary `json:"summary"`
	Issues  *[]wireIssue `json:"issues"`
}

type wireSummary struct {
	Performance   *int `json:"performance"`
	SEO           *int `json:"seo"`
	Accessibility *int `json:"accessibility"`
	BestPractices *int `json:"bestPractices"`
	TotalIssues   *int `json:"totalIssues"`
}

type wireIssue struct {
	Type    *string `json:"type"`
	Title   *string `json:"title"`
	Reason  *string `json:"reason"`
	Impact  *string `json:"impact"`
	Fix     *string `json:"fix"`
	HelpURL *string `json:"helpUrl"`
}

// DecodeAuditResult parses and validates an audit service response body.
// Any deviation from the expected shape returns a *MalformedResponseError
// naming the offending field; unknown extra fields are ignored.
func DecodeAuditResult(data []byte) (*AuditResult, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, newMalformed("", "empty response body")
	}

	var wire wireResult
	if err := json.Unmarshal(data, &wire); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &MalformedResponseError{
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value),
				Err:    err,
			}
		}
		return nil, &MalformedResponseError{Reason: "invalid JSON", Err: err}
	}

	if wire.Summary == nil {
		return nil, newMalformed("summary", "missing")
	}
	if wire.Issues == nil {
		return nil, newMalformed("issues", "missing")
	}

	summary, err := wire.Summary.toSummary()
	if err != nil {
		return nil, err
	}

	issues := make([]Issue, 0, len(*wire.Issues))
	for i, wi := range *wire.Issues {
		issue, err := wi.toIssue(i)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}

	result := &AuditResult{Summary: summary, Issues: issues}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// toSummary converts the wire summary, requiring every field.
func (w *wireSummary) toSummary() (Summary, error) {
	fields := []struct {
		name  string
		value *int
	}{
		{"summary.performance", w.Performance},
		{"summary.seo", w.SEO},
		{"summary.accessibility", w.Accessibility},
		{"summary.bestPractices", w.BestPractices},
		{"summary.totalIssues", w.TotalIssues},
	}
	for _, f := range fields {
		if f.value == nil {
			return Summary{}, newMalformed(f.name, "missing")
		}
	}

	return Summary{
		Performance:   *w.Performance,
		SEO:           *w.SEO,
		Accessibility: *w.Accessibility,
		BestPractices: *w.BestPractices,
		TotalIssues:   *w.TotalIssues,
	}, nil
}

// toIssue converts the wire issue at the given index.
func (w wireIssue) toIssue(index int) (Issue, error) {
	prefix := fmt.Sprintf("issues[%d]", index)

	required := []struct {
		name  string
		value *string
	}{
		{"type", w.Type},
		{"title", w.Title},
		{"reason", w.Reason},
		{"impact", w.Impact},
		{"fix", w.Fix},
	}
	for _, f := range required {
		if f.value == nil {
			return Issue{}, newMalformed(prefix+"."+f.name, "missing")
		}
	}

	impact, err := ParseImpact(*w.Impact)
	if err != nil {
		return Issue{}, &MalformedResponseError{Field: prefix + ".impact", Reason: err.Error(), Err: err}
	}

	issue := Issue{
		Type:   *w.Type,
		Title:  *w.Title,
		Reason: *w.Reason,
		Impact: impact,
		Fix:    *w.Fix,
	}
	if w.HelpURL != nil {
		issue.HelpURL = *w.HelpURL
	}
	return issue, nil
}
