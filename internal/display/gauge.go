package display

import (
	"math"

	"github.com/nao1215/webaudit/internal/model"
)

// GaugeRadius is the radius of the circular score gauge. All four summary
// metrics use the same radius so their rings are visually comparable.
const GaugeRadius = 40.0

// Circumference is the stroke length of a full gauge ring.
const Circumference = 2 * math.Pi * GaugeRadius

// Tier thresholds. Each threshold is the inclusive lower bound of its tier.
const (
	GoodThreshold = 80
	WarnThreshold = 50
)

// Tier is the visual and semantic bucket of a score.
type Tier int

const (
	// TierBad is used for scores below WarnThreshold.
	TierBad Tier = iota
	// TierWarn is used for scores in [WarnThreshold, GoodThreshold).
	TierWarn
	// TierGood is used for scores of GoodThreshold and above.
	TierGood
)

// String returns the lowercase name of the tier.
func (t Tier) String() string {
	switch t {
	case TierGood:
		return "good"
	case TierWarn:
		return "warn"
	case TierBad:
		return "bad"
	default:
		return "unknown"
	}
}

// TextColorClass returns the text color class token for the tier.
func (t Tier) TextColorClass() string {
	switch t {
	case TierGood:
		return "text-emerald-500"
	case TierWarn:
		return "text-amber-500"
	default:
		return "text-red-500"
	}
}

// GradientClass returns the gauge card background gradient class token.
func (t Tier) GradientClass() string {
	switch t {
	case TierGood:
		return "from-emerald-500/20 to-emerald-500/5"
	case TierWarn:
		return "from-amber-500/20 to-amber-500/5"
	default:
		return "from-red-500/20 to-red-500/5"
	}
}

// TierFor returns the tier of a score.
func TierFor(score int) Tier {
	switch {
	case score >= GoodThreshold:
		return TierGood
	case score >= WarnThreshold:
		return TierWarn
	default:
		return TierBad
	}
}

// Gauge is the complete visual encoding of one score.
type Gauge struct {
	Score              int
	Tier               Tier
	TextColorClass     string
	GaugeGradientClass string
	Circumference      float64
	StrokeDashoffset   float64
}

// Visualize computes the tier and gauge geometry for a score.
// Scores outside [0,100] are clamped.
func Visualize(score int) Gauge {
	score = clampScore(score)
	tier := TierFor(score)
	return Gauge{
		Score:              score,
		Tier:               tier,
		TextColorClass:     tier.TextColorClass(),
		GaugeGradientClass: tier.GradientClass(),
		Circumference:      Circumference,
		StrokeDashoffset:   StrokeDashoffset(score),
	}
}

// StrokeDashoffset returns the dash offset that fills score percent of the
// ring: the full circumference at 0 (empty ring) and 0 at 100 (full ring).
func StrokeDashoffset(score int) float64 {
	score = clampScore(score)
	return Circumference - (float64(score)/float64(model.MaxScore))*Circumference
}

// clampScore limits a score to [model.MinScore, model.MaxScore].
func clampScore(score int) int {
	return max(model.MinScore, min(score, model.MaxScore))
}

// Metric identifies one of the four summary scores.
type Metric int

const (
	// MetricPerformance is the performance score.
	MetricPerformance Metric = iota
	// MetricSEO is the search engine optimization score.
	MetricSEO
	// MetricAccessibility is the accessibility score.
	MetricAccessibility
	// MetricBestPractices is the best practices score.
	MetricBestPractices
)

// Title returns the display title of the metric.
func (m Metric) Title() string {
	switch m {
	case MetricPerformance:
		return "Performance"
	case MetricSEO:
		return "SEO"
	case MetricAccessibility:
		return "Accessibility"
	case MetricBestPractices:
		return "Best Practices"
	default:
		return "Unknown"
	}
}

// Icon returns the icon token shown on the metric's card.
func (m Metric) Icon() string {
	switch m {
	case MetricPerformance:
		return IconZap
	case MetricSEO:
		return IconSearch
	case MetricAccessibility:
		return IconEye
	default:
		return IconActivity
	}
}

// MetricGauge is a Gauge labelled with its metric.
type MetricGauge struct {
	Metric Metric
	Title  string
	Icon   string
	Gauge
}

// SummaryGauges returns the gauges of the four summary scores in display
// order: Performance, SEO, Accessibility, Best Practices.
func SummaryGauges(s model.Summary) []MetricGauge {
	scores := []struct {
		metric Metric
		score  int
	}{
		{MetricPerformance, s.Performance},
		{MetricSEO, s.SEO},
		{MetricAccessibility, s.Accessibility},
		{MetricBestPractices, s.BestPractices},
	}

	gauges := make([]MetricGauge, 0, len(scores))
	for _, sc := range scores {
		gauges = append(gauges, MetricGauge{
			Metric: sc.metric,
			Title:  sc.metric.Title(),
			Icon:   sc.metric.Icon(),
			Gauge:  Visualize(sc.score),
		})
	}
	return gauges
}

// WorstTier returns the lowest tier among the gauges, or TierGood when
// there are none.
func WorstTier(gauges []MetricGauge) Tier {
	worst := TierGood
	for _, g := range gauges {
		if g.Tier < worst {
			worst = g.Tier
		}
	}
	return worst
}
