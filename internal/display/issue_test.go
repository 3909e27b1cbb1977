package display

import (
	"testing"

	"github.com/nao1215/webaudit/internal/model"
)

// TestCategorize tests case-insensitive exact matching of type labels.
func TestCategorize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		issueType string
		want      Category
	}{
		{"performance", CategoryPerformance},
		{"Performance", CategoryPerformance},
		{"SEO", CategorySEO},
		{"seo", CategorySEO},
		{"Accessibility", CategoryAccessibility},
		{"UI", CategoryUI},
		{"ui", CategoryUI},
		{"unknown", CategoryGeneric},
		{"", CategoryGeneric},
		{" seo", CategoryGeneric},
		{"seo-meta", CategoryGeneric},
		{"best practices", CategoryGeneric},
	}

	for _, tc := range testCases {
		t.Run(tc.issueType, func(t *testing.T) {
			t.Parallel()
			got := Categorize(model.Issue{Type: tc.issueType})
			if got != tc.want {
				t.Errorf("Categorize(%q) = %v, want %v", tc.issueType, got, tc.want)
			}
		})
	}
}

// TestCategoryIcons tests that every category has a distinct icon and label.
func TestCategoryIcons(t *testing.T) {
	t.Parallel()

	icons := make(map[string]Category)
	for _, c := range Categories() {
		icon := c.Icon()
		if icon == "" {
			t.Errorf("category %v has no icon", c)
		}
		if other, ok := icons[icon]; ok {
			t.Errorf("categories %v and %v share icon %q", c, other, icon)
		}
		icons[icon] = c

		if c.Label() == "" {
			t.Errorf("category %v has no label", c)
		}
	}

	want := map[Category]string{
		CategoryPerformance:   IconZap,
		CategorySEO:           IconSearch,
		CategoryAccessibility: IconEye,
		CategoryUI:            IconGlobe,
		CategoryGeneric:       IconActivity,
	}
	for c, icon := range want {
		if c.Icon() != icon {
			t.Errorf("%v.Icon() = %q, want %q", c, c.Icon(), icon)
		}
	}
}

// TestTypeLabel tests readable labels for known and unknown type labels.
func TestTypeLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		issueType string
		want      string
	}{
		{"seo", "SEO"},
		{"ui", "UI"},
		{"performance", "Performance"},
		{"best practices", "Best Practices"},
		{"security", "Security"},
		{"", "General"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()
			if got := TypeLabel(model.Issue{Type: tc.issueType}); got != tc.want {
				t.Errorf("TypeLabel(%q) = %q, want %q", tc.issueType, got, tc.want)
			}
		})
	}
}

// TestBadgeStyle tests that each impact has exactly one distinct style.
func TestBadgeStyle(t *testing.T) {
	t.Parallel()

	want := map[model.Impact]string{
		model.ImpactHigh:   "bg-red-500/10 text-red-500 border-red-500/20",
		model.ImpactMedium: "bg-amber-500/10 text-amber-500 border-amber-500/20",
		model.ImpactLow:    "bg-blue-500/10 text-blue-500 border-blue-500/20",
	}

	for impact, style := range want {
		if got := BadgeStyle(impact); got != style {
			t.Errorf("BadgeStyle(%v) = %q, want %q", impact, got, style)
		}
	}
}

// TestBadgeStyleInvalidImpactPanics tests that the closed enum has no fallback.
func TestBadgeStyleInvalidImpactPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid impact")
		}
	}()
	BadgeStyle(model.Impact(0))
}

// TestIssueCountLabel tests pluralization of the issue count.
func TestIssueCountLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		n    int
		want string
	}{
		{0, "0 issues found"},
		{1, "1 issue found"},
		{2, "2 issues found"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()
			if got := IssueCountLabel(tc.n); got != tc.want {
				t.Errorf("IssueCountLabel(%d) = %q, want %q", tc.n, got, tc.want)
			}
		})
	}
}
