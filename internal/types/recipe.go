package types

import (
	"time"
)

// ServingInfo captures the serving count as stated by the source page.
type ServingInfo struct {
	Amount       int    `json:"amount"`
	Unit         string `json:"unit"`
	OriginalText string `json:"original_text"`
}

// Instruction is a single ordered step of a recipe.
type Instruction struct {
	Step int    `json:"step"`
	Text string `json:"text"`
}

// RecipeSource records where and how a recipe was obtained.
type RecipeSource struct {
	URL          string    `json:"url"`
	Domain       string    `json:"domain"`
	FetchedAt    time.Time `json:"fetched_at"`
	ScrapeMethod string    `json:"scrape_method"`
}

// Recipe is the canonical extraction result. Created once per successful
// scrape and never mutated afterwards; the caller owns it.
type Recipe struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Author       string             `json:"author,omitempty"`
	ImageURL     string             `json:"image_url,omitempty"`
	Servings     ServingInfo        `json:"servings"`
	Ingredients  []ParsedIngredient `json:"ingredients"`
	Instructions []Instruction      `json:"instructions"`
	Source       RecipeSource       `json:"source"`
}
