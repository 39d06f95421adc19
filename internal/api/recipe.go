package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ladle/backend/internal/middleware"
	"github.com/pageza/ladle/backend/internal/scaler"
	"github.com/pageza/ladle/backend/internal/service"
	"github.com/pageza/ladle/backend/internal/types"
)

// RecipeHandler serves the scrape and scale endpoints.
type RecipeHandler struct {
	scraper    service.IRecipeScraper
	scaler     *scaler.Scaler
	smartScale *service.SmartScaleService
	limiter    *middleware.RateLimiter
}

func NewRecipeHandler(scraperSvc service.IRecipeScraper, sc *scaler.Scaler, smart *service.SmartScaleService, limiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		scraper:    scraperSvc,
		scaler:     sc,
		smartScale: smart,
		limiter:    limiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/scrape", h.limiter.RateLimitMiddleware(), h.ScrapeRecipe)
		recipes.POST("/scale", h.ScaleRecipe)
		recipes.POST("/smart-scale", h.SmartScale)
	}
}

// ScrapeRecipe extracts a recipe from the submitted URL.
func (h *RecipeHandler) ScrapeRecipe(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.scraper.ScrapeRecipe(c.Request.Context(), req.URL)
	if err != nil {
		middleware.RespondScrapeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// ScaleRecipe applies a multiplier to a recipe's quantities.
func (h *RecipeHandler) ScaleRecipe(c *gin.Context) {
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Multiplier <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multiplier must be greater than zero"})
		return
	}
	if req.RoundingPrecision != "" && req.RoundingPrecision != "friendly" && req.RoundingPrecision != "exact" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rounding_precision must be \"friendly\" or \"exact\""})
		return
	}

	scaled := h.scaler.ScaleRecipe(req.Recipe, types.ScaleOptions{
		Multiplier:        req.Multiplier,
		TargetUnitSystem:  req.TargetUnitSystem,
		RoundingPrecision: req.RoundingPrecision,
	})

	c.JSON(http.StatusOK, scaled)
}

// SmartScale scales ingredients with advisory annotations. The response is
// always 200: advisory failure is reported in the body, not the status.
func (h *RecipeHandler) SmartScale(c *gin.Context) {
	var req SmartScaleAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Multiplier <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multiplier must be greater than zero"})
		return
	}

	data := h.smartScale.SmartScale(c.Request.Context(), req.RecipeID, types.SmartScaleRequest{
		Ingredients:      req.Ingredients,
		Multiplier:       req.Multiplier,
		OriginalServings: req.OriginalServings,
	})

	c.JSON(http.StatusOK, data)
}
