package types

import "time"

// UnitSystem selects a measurement system for optional unit conversion.
type UnitSystem string

const (
	UnitSystemImperial UnitSystem = "imperial"
	UnitSystemMetric   UnitSystem = "metric"
)

// IngredientCategory classifies how an ingredient behaves under scaling.
type IngredientCategory string

const (
	CategoryLinear    IngredientCategory = "linear"
	CategoryDiscrete  IngredientCategory = "discrete"
	CategoryLeavening IngredientCategory = "leavening"
	CategorySeasoning IngredientCategory = "seasoning"
	CategoryFat       IngredientCategory = "fat"
	CategoryLiquid    IngredientCategory = "liquid"
)

// ScaledQuantity holds a multiplied quantity plus its display form. The
// original values are always preserved regardless of rounding.
type ScaledQuantity struct {
	Value           float64  `json:"value"`
	ValueTo         *float64 `json:"value_to,omitempty"`
	Display         string   `json:"display"`
	DisplayModifier string   `json:"display_modifier,omitempty"`
	WasRounded      bool     `json:"was_rounded"`
	OriginalValue   float64  `json:"original_value"`
	OriginalValueTo *float64 `json:"original_value_to,omitempty"`
}

// ScaledIngredient pairs a parsed ingredient with its scaled quantity and
// assembled display line. The advisory fields are only populated by the
// smart scaling path and never change the numbers.
type ScaledIngredient struct {
	ParsedIngredient
	ScaledQuantity   *ScaledQuantity    `json:"scaled_quantity,omitempty"`
	ScaledUnit       string             `json:"scaled_unit,omitempty"`
	DisplayText      string             `json:"display_text"`
	AIAdjusted       bool               `json:"ai_adjusted"`
	AdjustmentReason string             `json:"adjustment_reason,omitempty"`
	Category         IngredientCategory `json:"category"`
}

// ScaleOptions control a scaling request. Multiplier bounds are deliberately
// not enforced here; that policy belongs to the caller.
type ScaleOptions struct {
	Multiplier        float64     `json:"multiplier"`
	TargetUnitSystem  *UnitSystem `json:"target_unit_system,omitempty"`
	RoundingPrecision string      `json:"rounding_precision,omitempty"` // "friendly" or "exact"
}

// ScaledRecipe is the result of one scaling request. Ephemeral: recomputed
// per request and never persisted.
type ScaledRecipe struct {
	Recipe              *Recipe            `json:"recipe"`
	OriginalServings    int                `json:"original_servings"`
	ScaledServings      int                `json:"scaled_servings"`
	Multiplier          float64            `json:"multiplier"`
	ScaledAt            time.Time          `json:"scaled_at"`
	OriginalIngredients []ParsedIngredient `json:"original_ingredients"`
	ScaledIngredients   []ScaledIngredient `json:"scaled_ingredients"`
	Tips                []string           `json:"tips,omitempty"`
}

// SmartScaleRequest is the input to the smart scaling adapter.
type SmartScaleRequest struct {
	Ingredients      []ParsedIngredient `json:"ingredients"`
	Multiplier       float64            `json:"multiplier"`
	OriginalServings int                `json:"original_servings,omitempty"`
}

// SmartScaleData is the smart scaling adapter's result. Success=false means
// the advisory layer failed and the ingredients carry deterministic values
// only; the numbers are always usable either way.
type SmartScaleData struct {
	Ingredients           []ScaledIngredient `json:"ingredients"`
	Tips                  []string           `json:"tips"`
	CookingTimeAdjustment string             `json:"cooking_time_adjustment,omitempty"`
	Success               bool               `json:"success"`
	Error                 string             `json:"error,omitempty"`
}
