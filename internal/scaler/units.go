package scaler

import (
	"strings"

	"github.com/pageza/ladle/backend/internal/types"
)

// unitInfo describes a unit's measurement system and its conversion into a
// sibling unit of the other system. Only these fixed pairs are supported;
// anything else passes through unconverted.
type unitInfo struct {
	system    types.UnitSystem
	convertTo string
	factor    float64
}

var unitTable = map[string]unitInfo{
	"cup":         {types.UnitSystemImperial, "milliliter", 236.588},
	"tablespoon":  {types.UnitSystemImperial, "milliliter", 14.787},
	"teaspoon":    {types.UnitSystemImperial, "milliliter", 4.929},
	"fluid ounce": {types.UnitSystemImperial, "milliliter", 29.574},
	"pint":        {types.UnitSystemImperial, "milliliter", 473.176},
	"quart":       {types.UnitSystemImperial, "milliliter", 946.353},
	"gallon":      {types.UnitSystemImperial, "milliliter", 3785.41},
	"ounce":       {types.UnitSystemImperial, "gram", 28.3495},
	"pound":       {types.UnitSystemImperial, "gram", 453.592},
	"milliliter":  {types.UnitSystemMetric, "cup", 1.0 / 236.588},
	"liter":       {types.UnitSystemMetric, "quart", 1.05669},
	"gram":        {types.UnitSystemMetric, "ounce", 0.035274},
	"kilogram":    {types.UnitSystemMetric, "pound", 2.20462},
}

// convertUnit converts value (and valueTo when present) into the target
// system. Units outside the table, or already in the target system, are
// left untouched.
func convertUnit(value float64, valueTo *float64, unit string, target types.UnitSystem) (float64, *float64, string) {
	info, ok := unitTable[unit]
	if !ok || info.system == target {
		return value, valueTo, unit
	}

	converted := value * info.factor
	var convertedTo *float64
	if valueTo != nil {
		v := *valueTo * info.factor
		convertedTo = &v
	}
	return converted, convertedTo, info.convertTo
}

var irregularPlurals = map[string]string{
	"dash":  "dashes",
	"pinch": "pinches",
}

// unitForQuantity renders the unit token for display: singular when the
// effective quantity is at most one, plural otherwise. Multi-word units
// pluralize only their last word.
func unitForQuantity(unit string, quantity float64) string {
	if unit == "" {
		return ""
	}
	if quantity <= 1 {
		return singularize(unit)
	}
	return pluralize(unit)
}

func singularize(unit string) string {
	if strings.HasSuffix(unit, "s") && !strings.HasSuffix(unit, "ss") {
		return strings.TrimSuffix(unit, "s")
	}
	return unit
}

func pluralize(unit string) string {
	words := strings.Split(unit, " ")
	last := words[len(words)-1]

	if plural, ok := irregularPlurals[last]; ok {
		words[len(words)-1] = plural
	} else if !strings.HasSuffix(last, "s") || strings.HasSuffix(last, "ss") {
		words[len(words)-1] = last + "s"
	}
	return strings.Join(words, " ")
}
