package grade

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestPercentageToLetter(t *testing.T) {
	cases := []struct {
		pct  float64
		want Letter
	}{
		{100, APlus},
		{97, APlus},
		{96.99, A},
		{93, A},
		{90, AMinus},
		{87, BPlus},
		{85, B},
		{80, BMinus},
		{77, CPlus},
		{73, C},
		{70, CMinus},
		{67, DPlus},
		{63, D},
		{60, DMinus},
		{59, F},
		{0, F},
		{-0.5, NotAvailable},
		{math.NaN(), NotAvailable},
	}
	for _, c := range cases {
		if got := PercentageToLetter(c.pct); got != c.want {
			t.Fatalf("PercentageToLetter(%v) = %q want %q", c.pct, got, c.want)
		}
	}
}

func TestPointsMonotonic(t *testing.T) {
	prev := -1.0
	for pct := 0.0; pct <= 100; pct += 0.25 {
		points := Points(PercentageToLetter(pct))
		if math.IsNaN(points) {
			t.Fatalf("no points for %v", pct)
		}
		if points < prev {
			t.Fatalf("points decreased at %v: %v < %v", pct, points, prev)
		}
		prev = points
	}
}

func TestLetterToPercentageRoundTrip(t *testing.T) {
	for _, l := range Letters() {
		pct := LetterToPercentage(l)
		if got := PercentageToLetter(pct); got != l {
			t.Fatalf("midpoint of %s (%v) maps back to %s", l, pct, got)
		}
	}
	if got := LetterToPercentage(F); got != 50 {
		t.Fatalf("F midpoint = %v want 50", got)
	}
	if !math.IsNaN(LetterToPercentage("E")) {
		t.Fatalf("expected NaN for unknown letter")
	}
	if !math.IsNaN(Points("Z")) {
		t.Fatalf("expected NaN points for unknown letter")
	}
}

func TestCalculateGPA(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := CalculateGPA(nil); got != 0 {
			t.Fatalf("want 0 got %v", got)
		}
	})

	t.Run("all ungraded", func(t *testing.T) {
		got := CalculateGPA([]Graded{{Credits: 3}, {Credits: 4}})
		if got != 0 {
			t.Fatalf("want 0 got %v", got)
		}
	})

	t.Run("weighted", func(t *testing.T) {
		got := CalculateGPA([]Graded{
			{Credits: 3, Percentage: ptr(95)},
			{Credits: 4, Percentage: ptr(85)},
		})
		if got != 3.43 {
			t.Fatalf("want 3.43 got %v", got)
		}
	})

	t.Run("ignores ungraded", func(t *testing.T) {
		got := CalculateGPA([]Graded{
			{Credits: 3, Percentage: ptr(95)},
			{Credits: 10},
		})
		if got != 4 {
			t.Fatalf("want 4 got %v", got)
		}
	})
}

func TestParseLetter(t *testing.T) {
	if l, ok := ParseLetter(" b+ "); !ok || l != BPlus {
		t.Fatalf("got %q %v", l, ok)
	}
	if _, ok := ParseLetter("E"); ok {
		t.Fatalf("E must not parse")
	}
}

func TestColorOf(t *testing.T) {
	cases := map[Letter]Color{
		APlus:  ColorExcellent,
		"a-":   ColorExcellent,
		B:      ColorGood,
		"c+":   ColorAverage,
		DMinus: ColorPoor,
		F:      ColorFailing,
		"":     ColorNeutral,
		"X":    ColorNeutral,
	}
	for l, want := range cases {
		if got := ColorOf(l); got != want {
			t.Fatalf("ColorOf(%q) = %s want %s", l, got, want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := FormatPercentage(87.25); got != "87.2%" && got != "87.3%" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatPercentage(math.NaN()); got != "n/a" {
		t.Fatalf("unexpected %q", got)
	}
}
