package scaler

import (
	"math"
	"strconv"
	"strings"
)

const (
	// fractionTolerance is how close a remainder must be to a culinary
	// fraction to snap to it.
	fractionTolerance = 0.05

	// wholeCutoff treats remainders below it as a whole number.
	wholeCutoff = 0.03
)

// culinaryFractions are the human-friendly fractions recipes use, in
// ascending order.
var culinaryFractions = []struct {
	value   float64
	display string
}{
	{1.0 / 8.0, "1/8"},
	{1.0 / 6.0, "1/6"},
	{1.0 / 5.0, "1/5"},
	{1.0 / 4.0, "1/4"},
	{1.0 / 3.0, "1/3"},
	{3.0 / 8.0, "3/8"},
	{2.0 / 5.0, "2/5"},
	{1.0 / 2.0, "1/2"},
	{3.0 / 5.0, "3/5"},
	{5.0 / 8.0, "5/8"},
	{2.0 / 3.0, "2/3"},
	{3.0 / 4.0, "3/4"},
	{4.0 / 5.0, "4/5"},
	{5.0 / 6.0, "5/6"},
	{7.0 / 8.0, "7/8"},
}

// DecimalToDisplay renders v as a whole number plus the nearest culinary
// fraction ("1 1/2", "1/4", "3"), falling back to a trimmed two-decimal
// rendering when no fraction is close enough.
func DecimalToDisplay(v float64) string {
	display, _ := friendlyDisplay(v)
	return display
}

// friendlyDisplay additionally reports whether rendering moved the value.
func friendlyDisplay(v float64) (string, bool) {
	whole := math.Floor(v)
	remainder := v - whole

	if remainder < wholeCutoff {
		return strconv.FormatFloat(whole, 'f', -1, 64), remainder != 0
	}

	best := -1
	bestDiff := fractionTolerance
	for i, frac := range culinaryFractions {
		diff := math.Abs(remainder - frac.value)
		if diff <= bestDiff {
			best = i
			bestDiff = diff
		}
	}

	if best >= 0 {
		frac := culinaryFractions[best]
		rounded := remainder != frac.value
		if whole == 0 {
			return frac.display, rounded
		}
		return strconv.FormatFloat(whole, 'f', -1, 64) + " " + frac.display, rounded
	}

	display := trimZeros(strconv.FormatFloat(v, 'f', 2, 64))
	return display, display != strconv.FormatFloat(v, 'f', -1, 64)
}

// exactDisplay renders v with three decimal places, trailing zeros trimmed.
func exactDisplay(v float64) (string, bool) {
	display := trimZeros(strconv.FormatFloat(v, 'f', 3, 64))
	return display, display != strconv.FormatFloat(v, 'f', -1, 64)
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
