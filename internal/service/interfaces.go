package service

import (
	"context"

	"github.com/pageza/ladle/backend/internal/types"
)

// ILLMClient is the narrow completion interface the smart scaling adapter
// depends on, so advisory behavior is testable without a live model.
type ILLMClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ISmartScaleStore is the TTL-cache backend for smart-scale results.
type ISmartScaleStore interface {
	Get(ctx context.Context, key string) (*types.SmartScaleData, bool)
	Set(ctx context.Context, key string, data *types.SmartScaleData) error
	SweepExpired(ctx context.Context) (int, error)
}

// IRecipeScraper extracts a recipe from a URL.
type IRecipeScraper interface {
	ScrapeRecipe(ctx context.Context, rawURL string) (*types.Recipe, error)
}
