package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pageza/ladle/backend/internal/cache"
	"github.com/pageza/ladle/backend/internal/monitoring"
	"github.com/pageza/ladle/backend/internal/scaler"
	"github.com/pageza/ladle/backend/internal/types"
)

// MemorySmartScaleStore keeps smart-scale results in process memory with the
// same TTL the redis store uses.
type MemorySmartScaleStore struct {
	mem *cache.Memory[*types.SmartScaleData]
}

func NewMemorySmartScaleStore() *MemorySmartScaleStore {
	return &MemorySmartScaleStore{mem: cache.NewMemory[*types.SmartScaleData](cache.SmartScaleTTL)}
}

func (s *MemorySmartScaleStore) Get(_ context.Context, key string) (*types.SmartScaleData, bool) {
	return s.mem.Get(key)
}

func (s *MemorySmartScaleStore) Set(_ context.Context, key string, data *types.SmartScaleData) error {
	s.mem.Set(key, data)
	return nil
}

func (s *MemorySmartScaleStore) SweepExpired(_ context.Context) (int, error) {
	return s.mem.SweepExpired(), nil
}

// SmartScaleService layers LLM advice over deterministic scaling. The
// deterministic result is computed first and is the floor: advisory failure
// of any kind degrades to it with Success=false, never to an error.
type SmartScaleService struct {
	llm     ILLMClient
	scaler  *scaler.Scaler
	store   ISmartScaleStore
	metrics *monitoring.Metrics
}

// NewSmartScaleService creates the adapter. llm may be nil, in which case
// every request returns the deterministic fallback.
func NewSmartScaleService(llm ILLMClient, sc *scaler.Scaler, store ISmartScaleStore, m *monitoring.Metrics) *SmartScaleService {
	return &SmartScaleService{llm: llm, scaler: sc, store: store, metrics: m}
}

const smartScaleSystemPrompt = `You are a culinary scaling assistant. You are given ingredients that have already been scaled mathematically. Do NOT change any quantities. For each ingredient decide whether the mathematical scaling needs a cook's adjustment (leavening agents, seasonings, and spices often scale sub-linearly) and classify it.

Respond with ONLY a JSON object in this exact shape:
{
  "ingredients": [
    {"index": 0, "ai_adjusted": false, "adjustment_reason": "", "category": "linear"}
  ],
  "tips": ["..."],
  "cooking_time_adjustment": "..."
}

Rules:
- "index" refers to the 0-based ingredient line number you were given.
- "category" is one of: linear, discrete, leavening, seasoning, fat, liquid.
- Set "ai_adjusted" true only when a cook should deviate from the math, and say why in "adjustment_reason".
- "tips" is 1 to 3 short practical tips for cooking at this batch size.
- Return no text outside the JSON object.`

// advisoryEntry is one per-ingredient judgment from the model, matched to
// the deterministic result by index.
type advisoryEntry struct {
	Index            int    `json:"index"`
	AIAdjusted       bool   `json:"ai_adjusted"`
	AdjustmentReason string `json:"adjustment_reason"`
	Category         string `json:"category"`
}

type advisoryResponse struct {
	Ingredients           []advisoryEntry `json:"ingredients"`
	Tips                  []string        `json:"tips"`
	CookingTimeAdjustment string          `json:"cooking_time_adjustment"`
}

// SmartScale scales req's ingredients deterministically and asks the model
// for advisory annotations. recipeID keys the result cache; an empty ID
// skips caching.
func (s *SmartScaleService) SmartScale(ctx context.Context, recipeID string, req types.SmartScaleRequest) *types.SmartScaleData {
	key := cacheKey(recipeID, req.Multiplier)
	if recipeID != "" && s.store != nil {
		if data, ok := s.store.Get(ctx, key); ok {
			s.metrics.IncCacheHit("smart_scale")
			return data
		}
	}

	opts := types.ScaleOptions{Multiplier: req.Multiplier}
	deterministic := make([]types.ScaledIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		deterministic = append(deterministic, s.scaler.ScaleIngredient(ing, opts))
	}

	if s.llm == nil {
		return s.fallback(deterministic, req.Multiplier, "smart scaling is not configured")
	}

	raw, err := s.llm.Complete(ctx, smartScaleSystemPrompt, buildUserPrompt(req))
	if err != nil {
		slog.Warn("smart scale LLM call failed", "error", err)
		return s.fallback(deterministic, req.Multiplier, "advisory request failed")
	}

	var advisory advisoryResponse
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &advisory); err != nil {
		slog.Warn("smart scale response was not valid JSON", "error", err)
		return s.fallback(deterministic, req.Multiplier, "advisory response was unreadable")
	}

	data := &types.SmartScaleData{
		Ingredients:           mergeAdvisory(deterministic, advisory.Ingredients),
		Tips:                  advisory.Tips,
		CookingTimeAdjustment: advisory.CookingTimeAdjustment,
		Success:               true,
	}
	if len(data.Tips) == 0 {
		data.Tips = fallbackTips(req.Multiplier)
	}

	if recipeID != "" && s.store != nil {
		if err := s.store.Set(ctx, key, data); err != nil {
			slog.Warn("failed to cache smart scale result", "error", err)
		}
	}
	return data
}

// fallback returns the deterministic result with canned tips. Failures are
// never cached so a later request can retry the advisory path.
func (s *SmartScaleService) fallback(ingredients []types.ScaledIngredient, multiplier float64, reason string) *types.SmartScaleData {
	s.metrics.IncSmartScaleFailure()
	return &types.SmartScaleData{
		Ingredients: ingredients,
		Tips:        fallbackTips(multiplier),
		Success:     false,
		Error:       reason,
	}
}

func cacheKey(recipeID string, multiplier float64) string {
	return recipeID + ":" + strconv.FormatFloat(multiplier, 'g', -1, 64)
}

// buildUserPrompt lists the already-scaled amounts as 0-indexed lines so the
// model's index field maps straight back.
func buildUserPrompt(req types.SmartScaleRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe scaled by %sx", strconv.FormatFloat(req.Multiplier, 'g', -1, 64))
	if req.OriginalServings > 0 {
		fmt.Fprintf(&b, " (originally %d servings)", req.OriginalServings)
	}
	b.WriteString(".\nIngredients:\n")
	for i, ing := range req.Ingredients {
		fmt.Fprintf(&b, "%d: %s\n", i, ing.Original)
	}
	return b.String()
}

// mergeAdvisory applies advisory annotations onto deterministic results by
// index. Only the annotation fields change; quantities, units, and display
// text are untouched. Out-of-range indexes and unknown categories are
// dropped.
func mergeAdvisory(deterministic []types.ScaledIngredient, entries []advisoryEntry) []types.ScaledIngredient {
	merged := make([]types.ScaledIngredient, len(deterministic))
	copy(merged, deterministic)

	for _, e := range entries {
		if e.Index < 0 || e.Index >= len(merged) {
			continue
		}
		merged[e.Index].AIAdjusted = e.AIAdjusted
		merged[e.Index].AdjustmentReason = e.AdjustmentReason
		if cat, ok := validCategory(e.Category); ok {
			merged[e.Index].Category = cat
		}
	}
	return merged
}

func validCategory(s string) (types.IngredientCategory, bool) {
	switch c := types.IngredientCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case types.CategoryLinear, types.CategoryDiscrete, types.CategoryLeavening,
		types.CategorySeasoning, types.CategoryFat, types.CategoryLiquid:
		return c, true
	}
	return "", false
}

// stripCodeFences unwraps ```json ... ``` fencing some models emit even when
// asked for bare JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var (
	smallBatchTips = []string{
		"Taste before adding the full amount of salt and strong spices.",
		"Check for doneness a few minutes early; smaller batches cook faster.",
		"Use a smaller pan so the food isn't spread too thin.",
	}
	mediumBatchTips = []string{
		"Scale leavening agents slightly below the multiplier and adjust by feel.",
		"Season in stages and taste as you go; spices don't always scale linearly.",
		"Cooking time grows less than the batch size; rely on visual cues.",
	}
	largeBatchTips = []string{
		"Work in batches when searing or frying so the pan stays hot.",
		"Large batches need noticeably longer in the oven; test the center.",
		"Hold back a third of the salt and seasonings, then adjust at the end.",
	}
)

// fallbackTips picks a canned tip set by multiplier band.
func fallbackTips(multiplier float64) []string {
	switch {
	case multiplier < 1:
		return smallBatchTips
	case multiplier <= 2:
		return mediumBatchTips
	default:
		return largeBatchTips
	}
}
