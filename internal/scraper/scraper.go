// Package scraper turns a recipe page URL into a canonical Recipe by
// running ordered extraction strategies over safely fetched HTML.
package scraper

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pageza/ladle/backend/internal/cache"
	"github.com/pageza/ladle/backend/internal/fetcher"
	"github.com/pageza/ladle/backend/internal/monitoring"
	"github.com/pageza/ladle/backend/internal/parser"
	"github.com/pageza/ladle/backend/internal/types"
)

// Fetcher retrieves a page's HTML. Satisfied by *fetcher.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.Result, error)
}

// strategy is one extraction approach tried in priority order.
type strategy interface {
	name() string
	extract(doc *goquery.Document) (*extracted, bool)
}

// Scraper orchestrates fetching, strategy fallback, normalization, and the
// per-URL recipe cache.
type Scraper struct {
	fetcher Fetcher
	parser  *parser.Parser
	// cache is keyed by the requested URL and never expires for the
	// lifetime of the process.
	cache      *cache.Memory[*types.Recipe]
	strategies []strategy
	metrics    *monitoring.Metrics
}

// New creates a Scraper with the default strategy order: structured data
// first, heuristics second.
func New(f Fetcher, p *parser.Parser, m *monitoring.Metrics) *Scraper {
	return &Scraper{
		fetcher:    f,
		parser:     p,
		cache:      cache.NewMemory[*types.Recipe](0),
		strategies: []strategy{schemaStrategy{}, heuristicStrategy{}},
		metrics:    m,
	}
}

// ScrapeRecipe fetches and extracts the recipe at rawURL. Errors carry one
// of the pipeline's typed codes.
func (s *Scraper) ScrapeRecipe(ctx context.Context, rawURL string) (*types.Recipe, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, types.NewScrapeError(types.ErrInvalidURL, "not a valid http(s) URL", err)
	}

	if recipe, ok := s.cache.Get(rawURL); ok {
		s.metrics.IncCacheHit("recipe_url")
		return recipe, nil
	}

	start := time.Now()
	result, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.metrics.IncScrapeError(string(types.CodeOf(err)))
		return nil, err
	}
	s.metrics.ObserveFetchDuration(time.Since(start).Seconds())

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		s.metrics.IncScrapeError(string(types.ErrScrapeFailed))
		return nil, types.NewScrapeError(types.ErrScrapeFailed, "could not parse page HTML", err)
	}

	for _, strat := range s.strategies {
		ex, ok := strat.extract(doc)
		if !ok {
			continue
		}
		recipe := buildRecipe(ex, result.FinalURL, u.Hostname(), strat.name(), s.parser)
		s.cache.Set(rawURL, recipe)
		s.metrics.IncScraped(strat.name())
		slog.Info("recipe extracted",
			"url", rawURL,
			"method", strat.name(),
			"ingredients", len(recipe.Ingredients),
			"instructions", len(recipe.Instructions))
		return recipe, nil
	}

	s.metrics.IncScrapeError(string(types.ErrRecipeNotFound))
	return nil, types.NewScrapeError(types.ErrRecipeNotFound, "no recipe content found on page", nil)
}
