package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ladle/backend/internal/scaler"
	"github.com/pageza/ladle/backend/internal/service"
	"github.com/pageza/ladle/backend/internal/types"
)

type stubScraper struct {
	recipe *types.Recipe
	err    error
}

func (s *stubScraper) ScrapeRecipe(_ context.Context, _ string) (*types.Recipe, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.recipe, nil
}

func testRecipe() *types.Recipe {
	return &types.Recipe{
		ID:       "r1",
		Title:    "Pancakes",
		Servings: types.ServingInfo{Amount: 4, Unit: "servings"},
		Ingredients: []types.ParsedIngredient{
			{ID: "i1", Original: "2 cups flour", Quantity: &types.IngredientQuantity{Value: 2}, Unit: "cup", Name: "flour"},
		},
		Instructions: []types.Instruction{{Step: 1, Text: "Mix."}},
	}
}

func testEngine(scraperSvc service.IRecipeScraper) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sc := scaler.New()
	smart := service.NewSmartScaleService(nil, sc, service.NewMemorySmartScaleStore(), nil)
	handler := NewRecipeHandler(scraperSvc, sc, smart, nil)

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestScrapeRecipeEndpoint(t *testing.T) {
	engine := testEngine(&stubScraper{recipe: testRecipe()})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes/scrape", gin.H{"url": "https://example.com/pancakes"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Recipe types.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Pancakes", resp.Recipe.Title)
	require.Len(t, resp.Recipe.Ingredients, 1)
}

func TestScrapeRecipeEndpointMissingURL(t *testing.T) {
	engine := testEngine(&stubScraper{recipe: testRecipe()})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes/scrape", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScrapeRecipeEndpointErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		code types.ErrCode
		want int
	}{
		{"invalid url", types.ErrInvalidURL, http.StatusBadRequest},
		{"network error", types.ErrNetwork, http.StatusBadGateway},
		{"scrape failed", types.ErrScrapeFailed, http.StatusBadGateway},
		{"not found", types.ErrRecipeNotFound, http.StatusNotFound},
		{"blocked", types.ErrBlockedBySite, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := testEngine(&stubScraper{err: types.NewScrapeError(tt.code, "boom", nil)})

			w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes/scrape", gin.H{"url": "https://example.com/x"})

			assert.Equal(t, tt.want, w.Code)
			var resp struct {
				Code string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, string(tt.code), resp.Code)
		})
	}
}

func TestScaleRecipeEndpoint(t *testing.T) {
	engine := testEngine(&stubScraper{})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes/scale", gin.H{
		"recipe":     testRecipe(),
		"multiplier": 2,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var scaled types.ScaledRecipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scaled))
	assert.Equal(t, 8, scaled.ScaledServings)
	require.Len(t, scaled.ScaledIngredients, 1)
	assert.Equal(t, 4.0, scaled.ScaledIngredients[0].ScaledQuantity.Value)
	assert.Equal(t, "4 cups flour", scaled.ScaledIngredients[0].DisplayText)
}

func TestScaleRecipeEndpointRejectsBadInput(t *testing.T) {
	engine := testEngine(&stubScraper{})

	t.Run("zero multiplier", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes/scale", gin.H{
			"recipe":     testRecipe(),
			"multiplier": 0,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative multiplier", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes/scale", gin.H{
			"recipe":     testRecipe(),
			"multiplier": -1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing recipe", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes/scale", gin.H{"multiplier": 2})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad rounding precision", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes/scale", gin.H{
			"recipe":             testRecipe(),
			"multiplier":         2,
			"rounding_precision": "vague",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSmartScaleEndpointDegradesWithoutLLM(t *testing.T) {
	engine := testEngine(&stubScraper{})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/recipes/smart-scale", gin.H{
		"recipe_id":   "r1",
		"ingredients": testRecipe().Ingredients,
		"multiplier":  3,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var data types.SmartScaleData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.False(t, data.Success)
	require.Len(t, data.Ingredients, 1)
	assert.Equal(t, 6.0, data.Ingredients[0].ScaledQuantity.Value)
	assert.NotEmpty(t, data.Tips)
}
