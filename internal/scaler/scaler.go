// Package scaler applies a serving multiplier to parsed ingredient
// quantities with unit conversion, culinary-fraction rounding, and display
// assembly. It is fully deterministic and never returns an error; multiplier
// bounds are the caller's policy.
package scaler

import (
	"math"
	"strings"
	"time"

	"github.com/pageza/ladle/backend/internal/types"
)

const (
	// pinchTasteThreshold: at or below 1/32 the amount is shown as
	// "a pinch" qualified with "to taste".
	pinchTasteThreshold = 1.0 / 32.0

	// pinchThreshold: at or below 1/16 the amount is shown as "a pinch".
	pinchThreshold = 1.0 / 16.0
)

// Scaler is a stateless scaling engine, safe for concurrent use.
type Scaler struct{}

// New creates a Scaler.
func New() *Scaler {
	return &Scaler{}
}

// ScaleRecipe scales every ingredient of recipe and assembles the scaled
// recipe with servings, metadata, and band-appropriate tips.
func (s *Scaler) ScaleRecipe(recipe *types.Recipe, opts types.ScaleOptions) *types.ScaledRecipe {
	scaled := make([]types.ScaledIngredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		scaled = append(scaled, s.ScaleIngredient(ing, opts))
	}

	return &types.ScaledRecipe{
		Recipe:              recipe,
		OriginalServings:    recipe.Servings.Amount,
		ScaledServings:      int(math.Round(float64(recipe.Servings.Amount) * opts.Multiplier)),
		Multiplier:          opts.Multiplier,
		ScaledAt:            time.Now(),
		OriginalIngredients: recipe.Ingredients,
		ScaledIngredients:   scaled,
		Tips:                tipsForMultiplier(opts.Multiplier),
	}
}

// ScaleIngredient scales one parsed ingredient. Ingredients without a
// quantity pass through with their original text as display.
func (s *Scaler) ScaleIngredient(ing types.ParsedIngredient, opts types.ScaleOptions) types.ScaledIngredient {
	if ing.Quantity == nil {
		return types.ScaledIngredient{
			ParsedIngredient: ing,
			DisplayText:      ing.Original,
			Category:         types.CategoryLinear,
		}
	}

	value := ing.Quantity.Value * opts.Multiplier
	var valueTo *float64
	if ing.Quantity.ValueTo != nil {
		v := *ing.Quantity.ValueTo * opts.Multiplier
		valueTo = &v
	}

	unit := ing.Unit
	if opts.TargetUnitSystem != nil && unit != "" {
		value, valueTo, unit = convertUnit(value, valueTo, unit, *opts.TargetUnitSystem)
	}

	quantity := renderQuantity(value, valueTo, opts.RoundingPrecision)
	quantity.OriginalValue = ing.Quantity.Value
	quantity.OriginalValueTo = ing.Quantity.ValueTo

	return types.ScaledIngredient{
		ParsedIngredient: ing,
		ScaledQuantity:   &quantity,
		ScaledUnit:       unit,
		DisplayText:      assembleDisplay(quantity, unit, ing),
		Category:         types.CategoryLinear,
	}
}

// renderQuantity builds the display form of a scaled amount: tiny-amount
// thresholds first, then friendly or exact rendering.
func renderQuantity(value float64, valueTo *float64, precision string) types.ScaledQuantity {
	q := types.ScaledQuantity{Value: value, ValueTo: valueTo}

	largest := value
	if valueTo != nil && *valueTo > largest {
		largest = *valueTo
	}

	switch {
	case largest <= pinchTasteThreshold:
		q.Display = "a pinch"
		q.DisplayModifier = "to taste"
		q.WasRounded = true
		return q
	case largest <= pinchThreshold:
		q.Display = "a pinch"
		q.WasRounded = true
		return q
	}

	render := friendlyDisplay
	if precision == "exact" {
		render = exactDisplay
	}

	display, rounded := render(value)
	if valueTo != nil {
		displayTo, roundedTo := render(*valueTo)
		rounded = rounded || roundedTo
		if displayTo != display {
			display = display + "–" + displayTo
		}
	}

	q.Display = display
	q.WasRounded = rounded
	return q
}

// assembleDisplay builds the human line: quantity (with modifier), unit,
// name, ", preparation", " (notes)". The unit is omitted for pinch
// displays.
func assembleDisplay(q types.ScaledQuantity, unit string, ing types.ParsedIngredient) string {
	var b strings.Builder

	b.WriteString(q.Display)
	if q.DisplayModifier != "" {
		b.WriteString(" (" + q.DisplayModifier + ")")
	}

	if unit != "" && q.Display != "a pinch" {
		effective := q.Value
		if q.ValueTo != nil && *q.ValueTo > effective {
			effective = *q.ValueTo
		}
		b.WriteString(" " + unitForQuantity(unit, effective))
	}

	if ing.Name != "" {
		b.WriteString(" " + ing.Name)
	}
	if ing.Preparation != "" {
		b.WriteString(", " + ing.Preparation)
	}
	if ing.Notes != "" {
		b.WriteString(" (" + ing.Notes + ")")
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
