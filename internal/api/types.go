package api

import "github.com/pageza/ladle/backend/internal/types"

// ScrapeRequest asks the pipeline to extract a recipe from a URL.
type ScrapeRequest struct {
	URL string `json:"url" binding:"required"`
}

// ScaleRequest scales a previously scraped recipe deterministically.
type ScaleRequest struct {
	Recipe            *types.Recipe     `json:"recipe" binding:"required"`
	Multiplier        float64           `json:"multiplier" binding:"required"`
	TargetUnitSystem  *types.UnitSystem `json:"target_unit_system,omitempty"`
	RoundingPrecision string            `json:"rounding_precision,omitempty"`
}

// SmartScaleAPIRequest scales ingredients with LLM advisory annotations.
type SmartScaleAPIRequest struct {
	RecipeID         string                   `json:"recipe_id,omitempty"`
	Ingredients      []types.ParsedIngredient `json:"ingredients" binding:"required"`
	Multiplier       float64                  `json:"multiplier" binding:"required"`
	OriginalServings int                      `json:"original_servings,omitempty"`
}
