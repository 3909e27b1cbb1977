package display

import (
	"testing"

	"github.com/nao1215/webaudit/internal/model"
)

// TestNewReportViewNoIssues tests the all-clear presentation.
func TestNewReportViewNoIssues(t *testing.T) {
	t.Parallel()

	result := &model.AuditResult{
		Summary: model.Summary{Performance: 90, SEO: 90, Accessibility: 90, BestPractices: 90, TotalIssues: 0},
		Issues:  []model.Issue{},
	}

	view := NewReportView(result)
	if !view.Empty {
		t.Error("expected the no issues detected state")
	}
	if len(view.Issues) != 0 {
		t.Errorf("expected no issue views, got %d", len(view.Issues))
	}
	if view.WorstTier != TierGood {
		t.Errorf("expected worst tier good, got %v", view.WorstTier)
	}
	if view.CountLabel != "0 issues found" {
		t.Errorf("unexpected count label %q", view.CountLabel)
	}
}

// TestNewReportViewPreservesOrder tests that issues are not sorted or grouped.
func TestNewReportViewPreservesOrder(t *testing.T) {
	t.Parallel()

	result := &model.AuditResult{
		Summary: model.Summary{Performance: 40, SEO: 70, Accessibility: 85, BestPractices: 20, TotalIssues: 4},
		Issues: []model.Issue{
			{Type: "ui", Title: "a", Impact: model.ImpactLow},
			{Type: "SEO", Title: "b", Impact: model.ImpactHigh},
			{Type: "other", Title: "c", Impact: model.ImpactMedium},
			{Type: "performance", Title: "d", Impact: model.ImpactHigh},
		},
	}

	view := NewReportView(result)
	if view.Empty {
		t.Fatal("expected issues")
	}

	wantTitles := []string{"a", "b", "c", "d"}
	wantCategories := []Category{CategoryUI, CategorySEO, CategoryGeneric, CategoryPerformance}
	for i, iv := range view.Issues {
		if iv.Index != i {
			t.Errorf("issue %d: got index %d", i, iv.Index)
		}
		if iv.Title != wantTitles[i] {
			t.Errorf("issue %d: got title %q, want %q", i, iv.Title, wantTitles[i])
		}
		if iv.Category != wantCategories[i] {
			t.Errorf("issue %d: got category %v, want %v", i, iv.Category, wantCategories[i])
		}
		if iv.Badge != BadgeStyle(iv.Impact) {
			t.Errorf("issue %d: unexpected badge %q", i, iv.Badge)
		}
	}

	if view.ImpactCounts[model.ImpactHigh] != 2 {
		t.Errorf("expected 2 high issues, got %d", view.ImpactCounts[model.ImpactHigh])
	}
	if view.WorstTier != TierBad {
		t.Errorf("expected worst tier bad, got %v", view.WorstTier)
	}
	if view.CountLabel != "4 issues found" {
		t.Errorf("unexpected count label %q", view.CountLabel)
	}
}
