package display

import (
	"math"
	"testing"

	"github.com/nao1215/webaudit/internal/model"
)

const epsilon = 1e-9

// TestTierFor tests the tier boundaries, which are inclusive at the lower end.
func TestTierFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		score int
		want  Tier
	}{
		{0, TierBad},
		{49, TierBad},
		{50, TierWarn},
		{79, TierWarn},
		{80, TierGood},
		{100, TierGood},
	}

	for _, tc := range testCases {
		t.Run(tc.want.String(), func(t *testing.T) {
			t.Parallel()
			if got := TierFor(tc.score); got != tc.want {
				t.Errorf("TierFor(%d) = %v, want %v", tc.score, got, tc.want)
			}
			if got := Visualize(tc.score).Tier; got != tc.want {
				t.Errorf("Visualize(%d).Tier = %v, want %v", tc.score, got, tc.want)
			}
		})
	}
}

// TestVisualizeClasses tests the class tokens of each tier.
func TestVisualizeClasses(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		score    int
		text     string
		gradient string
	}{
		{95, "text-emerald-500", "from-emerald-500/20 to-emerald-500/5"},
		{65, "text-amber-500", "from-amber-500/20 to-amber-500/5"},
		{10, "text-red-500", "from-red-500/20 to-red-500/5"},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			t.Parallel()
			g := Visualize(tc.score)
			if g.TextColorClass != tc.text {
				t.Errorf("got text class %q, want %q", g.TextColorClass, tc.text)
			}
			if g.GaugeGradientClass != tc.gradient {
				t.Errorf("got gradient class %q, want %q", g.GaugeGradientClass, tc.gradient)
			}
		})
	}
}

// TestStrokeDashoffset tests the gauge geometry.
func TestStrokeDashoffset(t *testing.T) {
	t.Parallel()

	t.Run("circumference uses radius 40", func(t *testing.T) {
		t.Parallel()
		if math.Abs(Circumference-2*math.Pi*40) > epsilon {
			t.Errorf("unexpected circumference %f", Circumference)
		}
	})

	t.Run("empty ring at zero", func(t *testing.T) {
		t.Parallel()
		if got := StrokeDashoffset(0); got != Circumference {
			t.Errorf("StrokeDashoffset(0) = %f, want %f", got, Circumference)
		}
	})

	t.Run("full ring at 100", func(t *testing.T) {
		t.Parallel()
		if got := StrokeDashoffset(100); got != 0 {
			t.Errorf("StrokeDashoffset(100) = %f, want 0", got)
		}
	})

	t.Run("matches formula for every score", func(t *testing.T) {
		t.Parallel()
		for s := model.MinScore; s <= model.MaxScore; s++ {
			want := Circumference * (1 - float64(s)/100)
			if got := StrokeDashoffset(s); math.Abs(got-want) > epsilon {
				t.Errorf("StrokeDashoffset(%d) = %f, want %f", s, got, want)
			}
		}
	})

	t.Run("monotonically non-increasing", func(t *testing.T) {
		t.Parallel()
		prev := StrokeDashoffset(model.MinScore)
		for s := model.MinScore + 1; s <= model.MaxScore; s++ {
			cur := StrokeDashoffset(s)
			if cur > prev {
				t.Fatalf("offset increased from %f to %f at score %d", prev, cur, s)
			}
			prev = cur
		}
	})

	t.Run("out of range scores are clamped", func(t *testing.T) {
		t.Parallel()
		if got := StrokeDashoffset(-5); got != Circumference {
			t.Errorf("StrokeDashoffset(-5) = %f, want %f", got, Circumference)
		}
		if got := StrokeDashoffset(150); got != 0 {
			t.Errorf("StrokeDashoffset(150) = %f, want 0", got)
		}
		if got := Visualize(150).Score; got != 100 {
			t.Errorf("Visualize(150).Score = %d, want 100", got)
		}
	})
}

// TestSummaryGauges tests the order and labels of the four summary gauges.
func TestSummaryGauges(t *testing.T) {
	t.Parallel()

	gauges := SummaryGauges(model.Summary{
		Performance:   90,
		SEO:           60,
		Accessibility: 30,
		BestPractices: 80,
	})

	wantTitles := []string{"Performance", "SEO", "Accessibility", "Best Practices"}
	wantTiers := []Tier{TierGood, TierWarn, TierBad, TierGood}
	wantIcons := []string{IconZap, IconSearch, IconEye, IconActivity}

	if len(gauges) != len(wantTitles) {
		t.Fatalf("expected %d gauges, got %d", len(wantTitles), len(gauges))
	}
	for i, g := range gauges {
		if g.Title != wantTitles[i] {
			t.Errorf("gauge %d: got title %q, want %q", i, g.Title, wantTitles[i])
		}
		if g.Tier != wantTiers[i] {
			t.Errorf("gauge %d: got tier %v, want %v", i, g.Tier, wantTiers[i])
		}
		if g.Icon != wantIcons[i] {
			t.Errorf("gauge %d: got icon %q, want %q", i, g.Icon, wantIcons[i])
		}
		if g.Circumference != Circumference {
			t.Errorf("gauge %d: expected shared circumference", i)
		}
	}

	if worst := WorstTier(gauges); worst != TierBad {
		t.Errorf("expected worst tier bad, got %v", worst)
	}
}

// TestWorstTierEmpty tests the default of WorstTier.
func TestWorstTierEmpty(t *testing.T) {
	t.Parallel()

	if got := WorstTier(nil); got != TierGood {
		t.Errorf("WorstTier(nil) = %v, want good", got)
	}
}
