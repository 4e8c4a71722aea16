package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/yonder/experience-recommender/docs"
	"github.com/yonder/experience-recommender/internal/api"
	"github.com/yonder/experience-recommender/internal/api/handler"
	"github.com/yonder/experience-recommender/internal/core/ports"
	"github.com/yonder/experience-recommender/internal/core/prompt"
	"github.com/yonder/experience-recommender/internal/core/service"
	"github.com/yonder/experience-recommender/internal/infrastructure/catalog"
	mongodb "github.com/yonder/experience-recommender/internal/infrastructure/db/mongo"
	redisdb "github.com/yonder/experience-recommender/internal/infrastructure/db/redis"
	"github.com/yonder/experience-recommender/internal/infrastructure/llm"
	"github.com/yonder/experience-recommender/internal/infrastructure/worker"
	"github.com/yonder/experience-recommender/internal/pkg/config"
	"github.com/yonder/experience-recommender/internal/pkg/validation"
	"github.com/yonder/experience-recommender/pkg/logger"
)

const (
	serviceName     = "experience-recommender"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	checks := map[string]handler.Check{}

	// --- Catalog ---
	var source ports.CatalogSource
	switch cfg.Catalog.Source {
	case config.SourceMongo:
		db, err := mongodb.Open(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return err
		}
		defer func() { _ = db.Close(context.Background()) }()

		repo := db.Catalog()
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure catalog indexes")
		}
		source = repo
		checks["mongodb"] = db.Ping
	default:
		source = catalog.NewFileSource(cfg.Catalog.Path)
	}

	store := service.NewCatalogStore(source, validation.New(), log)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("initial catalog load: %w", err)
	}

	// --- Cache (optional) ---
	var cache ports.RecommendationCache
	if cfg.CacheEnabled() {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, recommendation cache disabled")
		} else {
			defer func() { _ = rdb.Close() }()
			cache = redisdb.NewRecommendationCache(rdb)
			checks["redis"] = redisdb.Pinger(rdb)
		}
	}

	// --- Recommendations ---
	provider, model := newProvider(cfg)
	recommender := llm.NewResilient(provider, llm.ResilienceOptions{
		Timeout:    cfg.LLM.Timeout,
		MaxRetries: cfg.LLM.MaxRetries,
	}, log)

	composer, err := newComposer(cfg.Recommendation.PromptTemplate)
	if err != nil {
		return err
	}

	recommendations := service.NewRecommendationService(store, composer, recommender, cache, service.RecommendationOptions{
		Count:          cfg.Recommendation.Count,
		CacheTTL:       cfg.Recommendation.CacheTTL,
		CacheNamespace: provider.Name() + ":" + model,
	}, log)

	reloaderDone := worker.NewReloader(cfg.Catalog.ReloadInterval, store, log).Start(ctx)

	// --- HTTP ---
	e, err := api.NewRouter(api.Deps{
		Catalog:         store,
		Recommendations: recommendations,
		Checks:          checks,
		AdminJWTSecret:  cfg.AdminJWTSecret,
		RateLimit:       cfg.Recommendation.RateLimit,
		Log:             log,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("provider", provider.Name()).
			Str("model", model).
			Str("catalog_source", source.Name()).
			Bool("cache", cache != nil).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	<-reloaderDone

	log.Info().Msg("server stopped")
	return nil
}

func newProvider(cfg *config.Config) (llm.Provider, string) {
	llmCfg := llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.APIKey(),
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}
	if cfg.LLM.Provider == config.ProviderAnthropic {
		c := llm.NewAnthropicClient(llmCfg)
		return c, c.Model()
	}
	c := llm.NewOpenAIClient(llmCfg)
	return c, c.Model()
}

func newComposer(templatePath string) (*prompt.Composer, error) {
	if templatePath == "" {
		return prompt.NewComposer("")
	}
	b, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("read prompt template: %w", err)
	}
	return prompt.NewComposer(string(b))
}

