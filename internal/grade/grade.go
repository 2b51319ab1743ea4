// Package grade converts between percentages, letter grades and 4.0-scale GPA points.
//
// Every function is pure. Unknown letters never panic: they yield NotAvailable, NaN or
// ColorNeutral so callers can render an explicit "n/a".
package grade

import (
	"fmt"
	"math"
	"strings"
)

// Letter is a US-style letter grade such as "A-" or "B+".
type Letter string

const (
	NotAvailable Letter = ""

	APlus  Letter = "A+"
	A      Letter = "A"
	AMinus Letter = "A-"
	BPlus  Letter = "B+"
	B      Letter = "B"
	BMinus Letter = "B-"
	CPlus  Letter = "C+"
	C      Letter = "C"
	CMinus Letter = "C-"
	DPlus  Letter = "D+"
	D      Letter = "D"
	DMinus Letter = "D-"
	F      Letter = "F"
)

type band struct {
	letter   Letter
	min      float64
	midpoint float64
	points   float64
}

// bands is ordered by descending threshold; PercentageToLetter relies on it.
var bands = []band{
	{APlus, 97, 98.5, 4.0},
	{A, 93, 95, 4.0},
	{AMinus, 90, 91.5, 3.7},
	{BPlus, 87, 88.5, 3.3},
	{B, 83, 85, 3.0},
	{BMinus, 80, 81.5, 2.7},
	{CPlus, 77, 78.5, 2.3},
	{C, 73, 75, 2.0},
	{CMinus, 70, 71.5, 1.7},
	{DPlus, 67, 68.5, 1.3},
	{D, 63, 65, 1.0},
	{DMinus, 60, 61.5, 0.7},
	// F midpoint is a fixed placeholder, not the true 0-59 band centre.
	{F, 0, 50, 0.0},
}

func lookup(l Letter) (band, bool) {
	for _, b := range bands {
		if b.letter == l {
			return b, true
		}
	}
	return band{}, false
}

// Letters returns every known letter grade from best to worst.
func Letters() []Letter {
	out := make([]Letter, len(bands))
	for i, b := range bands {
		out[i] = b.letter
	}
	return out
}

// Valid reports whether l is a known letter grade.
func (l Letter) Valid() bool {
	_, ok := lookup(l)
	return ok
}

func (l Letter) String() string { return string(l) }

// ParseLetter normalises user input ("a-", " B+ ") into a Letter.
func ParseLetter(s string) (Letter, bool) {
	l := Letter(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return NotAvailable, false
	}
	return l, true
}

// PercentageToLetter maps a percentage onto its letter band. Negative and NaN inputs
// have no band and return NotAvailable.
func PercentageToLetter(pct float64) Letter {
	if math.IsNaN(pct) {
		return NotAvailable
	}
	for _, b := range bands {
		if pct >= b.min {
			return b.letter
		}
	}
	return NotAvailable
}

// LetterToPercentage returns the representative percentage of a letter band, or NaN.
func LetterToPercentage(l Letter) float64 {
	b, ok := lookup(l)
	if !ok {
		return math.NaN()
	}
	return b.midpoint
}

// Points returns the 4.0-scale value of a letter grade, or NaN.
func Points(l Letter) float64 {
	b, ok := lookup(l)
	if !ok {
		return math.NaN()
	}
	return b.points
}

// Graded is the minimal input of a GPA computation.
type Graded struct {
	Credits    float64
	Percentage *float64
}

// CalculateGPA returns the credit-weighted GPA of the graded entries rounded to two
// decimals. Entries without a percentage are skipped; no graded credits yields 0.
func CalculateGPA(records []Graded) float64 {
	var weighted, credits float64
	for _, r := range records {
		if r.Percentage == nil {
			continue
		}
		points := Points(PercentageToLetter(*r.Percentage))
		if math.IsNaN(points) {
			continue
		}
		weighted += points * r.Credits
		credits += r.Credits
	}
	if credits == 0 {
		return 0
	}
	return Round2(weighted / credits)
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPercentage renders a percentage with one decimal, "n/a" for NaN.
func FormatPercentage(pct float64) string {
	if math.IsNaN(pct) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// Color is the display category of a grade.
type Color string

const (
	ColorExcellent Color = "green"
	ColorGood      Color = "blue"
	ColorAverage   Color = "yellow"
	ColorPoor      Color = "orange"
	ColorFailing   Color = "red"
	ColorNeutral   Color = "gray"
)

// ColorOf picks a color from the leading letter only, case-insensitively.
func ColorOf(l Letter) Color {
	s := strings.TrimSpace(string(l))
	if s == "" {
		return ColorNeutral
	}
	switch strings.ToUpper(s[:1]) {
	case "A":
		return ColorExcellent
	case "B":
		return ColorGood
	case "C":
		return ColorAverage
	case "D":
		return ColorPoor
	case "F":
		return ColorFailing
	default:
		return ColorNeutral
	}
}
