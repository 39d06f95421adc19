package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ladle/backend/config"
	"github.com/pageza/ladle/backend/internal/api"
	"github.com/pageza/ladle/backend/internal/cache"
	"github.com/pageza/ladle/backend/internal/fetcher"
	"github.com/pageza/ladle/backend/internal/middleware"
	"github.com/pageza/ladle/backend/internal/monitoring"
	"github.com/pageza/ladle/backend/internal/parser"
	"github.com/pageza/ladle/backend/internal/router"
	"github.com/pageza/ladle/backend/internal/scaler"
	"github.com/pageza/ladle/backend/internal/scraper"
	"github.com/pageza/ladle/backend/internal/service"
)

// sweepInterval is how often expired smart-scale entries are collected.
const sweepInterval = time.Hour

// Server wires the pipeline together behind one HTTP listener.
type Server struct {
	router    *gin.Engine
	http      *http.Server
	store     service.ISmartScaleStore
	stopSweep context.CancelFunc
}

// New builds the full pipeline from configuration. Redis and the LLM are
// both optional: without Redis the smart-scale cache lives in process
// memory and scraping is unthrottled, without an API key smart scaling
// always degrades to deterministic output.
func New(cfg *config.Config) (*Server, error) {
	metrics := monitoring.NewMetrics()

	var limiter *middleware.RateLimiter
	var store service.ISmartScaleStore
	if cfg.RedisConfigured() {
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		limiter = middleware.NewScrapeRateLimiter(client, cfg.ScrapeRateLimit, cfg.ScrapeRateWindow)
		store = cache.NewRedisSmartScaleStore(client)
	} else {
		slog.Warn("Redis not configured; using in-process smart-scale cache and no scrape throttling")
		store = service.NewMemorySmartScaleStore()
	}

	var llm service.ILLMClient
	if cfg.DeepSeekAPIKey != "" {
		client, err := service.NewDeepSeekClient(cfg)
		if err != nil {
			return nil, err
		}
		llm = client
	} else {
		slog.Warn("DEEPSEEK_API_KEY not set; smart scaling will return deterministic fallbacks")
	}

	p := parser.New()
	sc := scaler.New()
	scraperSvc := scraper.New(fetcher.New(cfg.FetchMaxBytes, cfg.FetchTimeout), p, metrics)
	smartScale := service.NewSmartScaleService(llm, sc, store, metrics)

	recipeHandler := api.NewRecipeHandler(scraperSvc, sc, smartScale, limiter)
	engine := router.SetupRouter(recipeHandler, cfg.AllowedOrigins)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		store: store,
	}, nil
}

// Start runs the cache sweeper and serves HTTP until Shutdown.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopSweep = cancel
	go s.sweepLoop(ctx)

	slog.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and the sweeper.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopSweep != nil {
		s.stopSweep()
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.store.SweepExpired(ctx)
			if err != nil {
				slog.Warn("cache sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("cache sweep removed expired entries", "removed", removed)
			}
		}
	}
}
