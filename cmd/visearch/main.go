package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/visearch/internal/config"
	dbRedis "github.com/kailas-cloud/visearch/internal/db/redis"
	"github.com/kailas-cloud/visearch/internal/domain"
	logpkg "github.com/kailas-cloud/visearch/internal/logger"
	"github.com/kailas-cloud/visearch/internal/metrics"
	budgetrepo "github.com/kailas-cloud/visearch/internal/repository/budget"
	catalogrepo "github.com/kailas-cloud/visearch/internal/repository/catalog"
	"github.com/kailas-cloud/visearch/internal/repository/embcache"
	feedbackrepo "github.com/kailas-cloud/visearch/internal/repository/feedback"
	indexrepo "github.com/kailas-cloud/visearch/internal/repository/index"
	profilerepo "github.com/kailas-cloud/visearch/internal/repository/profile"
	chiTransport "github.com/kailas-cloud/visearch/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/visearch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/visearch/internal/usecase/embedding"
	feedbackuc "github.com/kailas-cloud/visearch/internal/usecase/feedback"
	healthuc "github.com/kailas-cloud/visearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/visearch/internal/usecase/search"
	"github.com/kailas-cloud/visearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting visearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Int("dimension", cfg.Index.Dimension),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create index store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Index store not ready", zap.Error(err))
	}
	logger.Info("Connected to index store")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()
	metrics.RegisterFeedbackMetrics()

	// Embedder chain: OpenAI -> Cached. Raw-text queries are rejected when
	// no provider is configured; image and precomputed-text search still work.
	var embedder domain.Embedder = disabledEmbedder{}
	var embHealth healthuc.EmbeddingChecker
	if cfg.Embedding.Enabled() {
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Index.Dimension,
			Provider:   "openai",
			Logger:     logger,
		})

		budgetStore := budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour)
		budget := embeddinguc.NewBudgetTracker(
			"openai",
			cfg.Embedding.DailyTokenBudget,
			cfg.Embedding.MonthlyTokenBudget,
			embeddinguc.BudgetAction(cfg.Embedding.BudgetAction),
			logger,
		).WithStore(ctx, budgetStore)

		// Cache sits outside the budget so cache hits spend no tokens.
		embedder = embcache.New(
			embeddinguc.NewBudgeted(base, "openai", budget, logger), store,
			time.Duration(cfg.Embedding.CacheTTLSec)*time.Second,
			metrics.EmbeddingCacheTotal, logger,
		)
		embHealth = base
		logger.Info("Text embedder created",
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Index.Dimension),
		)
	}

	// Repositories
	indexRepo := indexrepo.New(store, indexrepo.Config{
		PartitionTimeout: time.Duration(cfg.Search.PartitionTimeoutMs) * time.Millisecond,
		RetryAttempts:    cfg.Search.RetryAttempts,
		MaxConcurrency:   cfg.Search.MaxConcurrency,
	})
	catalogRepo := catalogrepo.New(store)
	feedbackRepo := feedbackrepo.New(store)
	profileRepo := profilerepo.New(store)

	// Use case services
	searchSvc := searchuc.New(
		indexRepo, catalogRepo, feedbackRepo, profileRepo, embedder,
		searchuc.Config{
			Dimension:    cfg.Index.Dimension,
			Deadline:     time.Duration(cfg.Search.DeadlineMs) * time.Millisecond,
			ModelVersion: cfg.ModelVersion,
		},
	)
	feedbackSvc := feedbackuc.New(feedbackRepo)
	healthSvc := healthuc.New(store, embHealth)

	server := chiTransport.NewServer(searchSvc, feedbackSvc, healthSvc, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// disabledEmbedder rejects raw-text queries when no provider is configured.
type disabledEmbedder struct{}

func (disabledEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{},
		fmt.Errorf("%w: no text embedding provider configured", domain.ErrEmbeddingProviderError)
}
