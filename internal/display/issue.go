package display

import (
	"fmt"
	"strings"

	"github.com/nao1215/webaudit/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Icon tokens. The web UI maps each token to an inline SVG; the terminal
// writers print the token name.
const (
	IconZap      = "zap"
	IconSearch   = "search"
	IconEye      = "eye"
	IconGlobe    = "globe"
	IconActivity = "activity"
)

// Category is the icon category of an Issue, derived from its free-form
// type label.
type Category int

const (
	// CategoryGeneric is used for any type label that is not recognized.
	CategoryGeneric Category = iota
	// CategoryPerformance is used for the "performance" label.
	CategoryPerformance
	// CategorySEO is used for the "seo" label.
	CategorySEO
	// CategoryAccessibility is used for the "accessibility" label.
	CategoryAccessibility
	// CategoryUI is used for the "ui" label.
	CategoryUI
)

// Categories returns all categories.
func Categories() []Category {
	return []Category{
		CategoryPerformance,
		CategorySEO,
		CategoryAccessibility,
		CategoryUI,
		CategoryGeneric,
	}
}

// Categorize maps an issue's type label to its category by
// case-insensitive exact match. Unrecognized and empty labels map to
// CategoryGeneric.
func Categorize(issue model.Issue) Category {
	switch strings.ToLower(issue.Type) {
	case "performance":
		return CategoryPerformance
	case "seo":
		return CategorySEO
	case "accessibility":
		return CategoryAccessibility
	case "ui":
		return CategoryUI
	default:
		return CategoryGeneric
	}
}

// String returns the lowercase label of the category.
func (c Category) String() string {
	switch c {
	case CategoryPerformance:
		return "performance"
	case CategorySEO:
		return "seo"
	case CategoryAccessibility:
		return "accessibility"
	case CategoryUI:
		return "ui"
	default:
		return "generic"
	}
}

// Label returns the display label of the category.
func (c Category) Label() string {
	switch c {
	case CategoryPerformance:
		return "Performance"
	case CategorySEO:
		return "SEO"
	case CategoryAccessibility:
		return "Accessibility"
	case CategoryUI:
		return "UI"
	default:
		return "General"
	}
}

// Icon returns the icon token of the category.
func (c Category) Icon() string {
	switch c {
	case CategoryPerformance:
		return IconZap
	case CategorySEO:
		return IconSearch
	case CategoryAccessibility:
		return IconEye
	case CategoryUI:
		return IconGlobe
	default:
		return IconActivity
	}
}

// TypeLabel returns a readable label for an issue's type. Known
// categories use their canonical label; other labels are title-cased.
func TypeLabel(issue model.Issue) string {
	if c := Categorize(issue); c != CategoryGeneric {
		return c.Label()
	}
	if strings.TrimSpace(issue.Type) == "" {
		return CategoryGeneric.Label()
	}
	return cases.Title(language.English).String(issue.Type)
}

// BadgeStyle returns the class tokens of an impact badge. There is exactly
// one style per tier and no fallback: an impact outside the closed enum
// is a programming error and panics.
func BadgeStyle(impact model.Impact) string {
	switch impact {
	case model.ImpactHigh:
		return "bg-red-500/10 text-red-500 border-red-500/20"
	case model.ImpactMedium:
		return "bg-amber-500/10 text-amber-500 border-amber-500/20"
	case model.ImpactLow:
		return "bg-blue-500/10 text-blue-500 border-blue-500/20"
	default:
		panic(fmt.Sprintf("display: invalid impact %d", int(impact)))
	}
}

// IssueCountLabel returns the "N issues found" label, singular for one.
func IssueCountLabel(n int) string {
	if n == 1 {
		return "1 issue found"
	}
	return fmt.Sprintf("%d issues found", n)
}

// Empty state texts shown when a result has no issues.
const (
	NoIssuesTitle    = "No issues detected!"
	NoIssuesSubtitle = "Your website is looking great."
)
