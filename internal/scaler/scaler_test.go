package scaler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ladle/backend/internal/types"
)

func ptr(v float64) *float64 { return &v }

func ingredient(value float64, valueTo *float64, unit, name string) types.ParsedIngredient {
	return types.ParsedIngredient{
		ID:       "test",
		Original: name,
		Quantity: &types.IngredientQuantity{Value: value, ValueTo: valueTo},
		Unit:     unit,
		Name:     name,
	}
}

func TestDecimalToDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"whole number", 3.0, "3"},
		{"simple fraction", 0.25, "1/4"},
		{"mixed number", 1.5, "1 1/2"},
		{"third snaps", 0.333, "1/3"},
		{"two and two thirds", 2.6667, "2 2/3"},
		{"near whole snaps down", 2.02, "2"},
		{"eighth", 0.125, "1/8"},
		{"no nearby fraction", 1.05, "1.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecimalToDisplay(tt.value))
		})
	}
}

func TestScaleIngredient(t *testing.T) {
	s := New()

	t.Run("identity multiplier keeps the display exact", func(t *testing.T) {
		scaled := s.ScaleIngredient(ingredient(2, nil, "cup", "flour"), types.ScaleOptions{Multiplier: 1})
		require.NotNil(t, scaled.ScaledQuantity)
		assert.Equal(t, 2.0, scaled.ScaledQuantity.Value)
		assert.Equal(t, "2", scaled.ScaledQuantity.Display)
		assert.False(t, scaled.ScaledQuantity.WasRounded)
		assert.Equal(t, "2 cups flour", scaled.DisplayText)
	})

	t.Run("doubling a mixed quantity", func(t *testing.T) {
		scaled := s.ScaleIngredient(ingredient(0.75, nil, "cup", "sugar"), types.ScaleOptions{Multiplier: 2})
		assert.Equal(t, 1.5, scaled.ScaledQuantity.Value)
		assert.Equal(t, "1 1/2", scaled.ScaledQuantity.Display)
		assert.Equal(t, "1 1/2 cups sugar", scaled.DisplayText)
	})

	t.Run("tiny amount becomes a pinch to taste", func(t *testing.T) {
		scaled := s.ScaleIngredient(ingredient(0.25, nil, "teaspoon", "cayenne"), types.ScaleOptions{Multiplier: 0.1})
		assert.Equal(t, "a pinch", scaled.ScaledQuantity.Display)
		assert.Equal(t, "to taste", scaled.ScaledQuantity.DisplayModifier)
		assert.True(t, scaled.ScaledQuantity.WasRounded)
		assert.NotContains(t, scaled.DisplayText, "teaspoon")
		assert.Contains(t, scaled.DisplayText, "a pinch (to taste)")
	})

	t.Run("small amount becomes a pinch", func(t *testing.T) {
		scaled := s.ScaleIngredient(ingredient(0.125, nil, "teaspoon", "nutmeg"), types.ScaleOptions{Multiplier: 0.4})
		assert.Equal(t, "a pinch", scaled.ScaledQuantity.Display)
		assert.Empty(t, scaled.ScaledQuantity.DisplayModifier)
	})

	t.Run("range scales both bounds", func(t *testing.T) {
		scaled := s.ScaleIngredient(ingredient(1, ptr(2), "tablespoon", "olive oil"), types.ScaleOptions{Multiplier: 2})
		assert.Equal(t, 2.0, scaled.ScaledQuantity.Value)
		require.NotNil(t, scaled.ScaledQuantity.ValueTo)
		assert.Equal(t, 4.0, *scaled.ScaledQuantity.ValueTo)
		assert.Equal(t, "2–4", scaled.ScaledQuantity.Display)
	})

	t.Run("original values survive rounding", func(t *testing.T) {
		scaled := s.ScaleIngredient(ingredient(1, ptr(2), "cup", "stock"), types.ScaleOptions{Multiplier: 1.5})
		assert.Equal(t, 1.0, scaled.ScaledQuantity.OriginalValue)
		require.NotNil(t, scaled.ScaledQuantity.OriginalValueTo)
		assert.Equal(t, 2.0, *scaled.ScaledQuantity.OriginalValueTo)
	})

	t.Run("exact precision renders decimals", func(t *testing.T) {
		scaled := s.ScaleIngredient(ingredient(1.0/3.0, nil, "cup", "milk"), types.ScaleOptions{
			Multiplier:        2,
			RoundingPrecision: "exact",
		})
		assert.Equal(t, "0.667", scaled.ScaledQuantity.Display)
		assert.True(t, scaled.ScaledQuantity.WasRounded)
	})

	t.Run("metric conversion", func(t *testing.T) {
		metric := types.UnitSystemMetric
		scaled := s.ScaleIngredient(ingredient(1, nil, "cup", "water"), types.ScaleOptions{
			Multiplier:        1,
			TargetUnitSystem:  &metric,
			RoundingPrecision: "exact",
		})
		assert.Equal(t, "milliliter", scaled.ScaledUnit)
		assert.InDelta(t, 236.588, scaled.ScaledQuantity.Value, 1e-9)
		assert.Contains(t, scaled.DisplayText, "milliliters")
	})

	t.Run("unknown unit passes through conversion", func(t *testing.T) {
		metric := types.UnitSystemMetric
		scaled := s.ScaleIngredient(ingredient(2, nil, "clove", "garlic"), types.ScaleOptions{
			Multiplier:       1,
			TargetUnitSystem: &metric,
		})
		assert.Equal(t, "clove", scaled.ScaledUnit)
		assert.Equal(t, 2.0, scaled.ScaledQuantity.Value)
	})

	t.Run("no quantity passes through untouched", func(t *testing.T) {
		ing := types.ParsedIngredient{Original: "salt to taste", Name: "salt to taste"}
		scaled := s.ScaleIngredient(ing, types.ScaleOptions{Multiplier: 3})
		assert.Nil(t, scaled.ScaledQuantity)
		assert.Equal(t, "salt to taste", scaled.DisplayText)
		assert.Equal(t, types.CategoryLinear, scaled.Category)
	})
}

func TestConvertUnit(t *testing.T) {
	t.Run("round trip cup through milliliters", func(t *testing.T) {
		ml, _, unit := convertUnit(1, nil, "cup", types.UnitSystemMetric)
		require.Equal(t, "milliliter", unit)

		cups, _, unit := convertUnit(ml, nil, unit, types.UnitSystemImperial)
		assert.Equal(t, "cup", unit)
		assert.InDelta(t, 1.0, cups, 1e-9)
	})

	t.Run("already in target system", func(t *testing.T) {
		v, _, unit := convertUnit(100, nil, "gram", types.UnitSystemMetric)
		assert.Equal(t, "gram", unit)
		assert.Equal(t, 100.0, v)
	})
}

func TestUnitForQuantity(t *testing.T) {
	assert.Equal(t, "cup", unitForQuantity("cup", 1))
	assert.Equal(t, "cups", unitForQuantity("cup", 2))
	assert.Equal(t, "cup", unitForQuantity("cups", 0.5))
	assert.Equal(t, "pinches", unitForQuantity("pinch", 3))
	assert.Equal(t, "fluid ounces", unitForQuantity("fluid ounce", 4))
	assert.Empty(t, unitForQuantity("", 2))
}

func TestTipsForMultiplier(t *testing.T) {
	assert.Nil(t, tipsForMultiplier(1))
	assert.Equal(t, halvingTips, tipsForMultiplier(0.5))
	assert.Equal(t, doublingTips, tipsForMultiplier(2))
	assert.Equal(t, triplingTips, tipsForMultiplier(3))
	assert.Equal(t, largeBatchTips, tipsForMultiplier(4))
}

func TestScaleRecipe(t *testing.T) {
	s := New()
	recipe := &types.Recipe{
		ID:       "r1",
		Title:    "Pancakes",
		Servings: types.ServingInfo{Amount: 4, Unit: "servings"},
		Ingredients: []types.ParsedIngredient{
			ingredient(2, nil, "cup", "flour"),
			ingredient(1, nil, "teaspoon", "baking soda"),
		},
	}

	scaled := s.ScaleRecipe(recipe, types.ScaleOptions{Multiplier: 1.5})

	assert.Equal(t, 4, scaled.OriginalServings)
	assert.Equal(t, 6, scaled.ScaledServings)
	assert.Equal(t, 1.5, scaled.Multiplier)
	require.Len(t, scaled.ScaledIngredients, 2)
	assert.Equal(t, "3", scaled.ScaledIngredients[0].ScaledQuantity.Display)
	assert.Equal(t, recipe.Ingredients, scaled.OriginalIngredients)
	assert.Equal(t, doublingTips, scaled.Tips)
	assert.WithinDuration(t, time.Now(), scaled.ScaledAt, time.Minute)
}
