package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/bcnlabs/prospect-ai-platform/internal/api/router"
	appconfig "github.com/bcnlabs/prospect-ai-platform/internal/config"
	"github.com/bcnlabs/prospect-ai-platform/internal/directory"
	"github.com/bcnlabs/prospect-ai-platform/internal/observability/metrics"
	"github.com/bcnlabs/prospect-ai-platform/internal/outreach"
	"github.com/bcnlabs/prospect-ai-platform/internal/prospects"
	"github.com/bcnlabs/prospect-ai-platform/internal/session"
	"github.com/bcnlabs/prospect-ai-platform/pkg/logging"
)

func main() {
	// Load .env in local development; ignored when absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting prospect-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.AuthJWTSecret == "" {
		logger.Error("AUTH_JWT_SECRET is required")
		os.Exit(1)
	}

	ctx := context.Background()
	pipelineMetrics := metrics.NewPipelineMetrics(prometheus.DefaultRegisterer)

	// Prospect storage: Postgres when configured, in-memory otherwise.
	var repo prospects.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = prospects.NewPostgresRepository(pool)
		logger.Info("prospect storage: postgres")
	} else {
		repo = prospects.NewInMemoryRepository()
		logger.Warn("prospect storage: in-memory, data will not survive restarts")
	}

	// Search session counter: Redis when configured, in-memory otherwise.
	var sessions prospects.SessionCounter
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		sessions = session.NewRedisCounter(redis.NewClient(opts))
		logger.Info("session counter: redis", "addr", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryCounter()
	}

	// Directory client is optional; searches fail with a configuration error
	// until the key is set, but the server still serves stored prospects.
	var directoryClient prospects.DirectoryClient
	if cfg.TheOrgAPIKey != "" {
		client, err := directory.New(directory.Config{
			BaseURL: cfg.TheOrgBaseURL,
			APIKey:  cfg.TheOrgAPIKey,
			Timeout: cfg.TheOrgTimeout,
			Logger:  logger.Logger,
		})
		if err != nil {
			logger.Error("failed to create directory client", "error", err)
			os.Exit(1)
		}
		directoryClient = client
	} else {
		logger.Warn("THEORG_API_KEY not set, prospect search disabled")
	}

	// Message generation is optional too; the template fallback covers it.
	var llm outreach.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := outreach.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer func() { _ = gemini.Close() }()
		llm = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, using template messages")
	}

	service := prospects.NewService(prospects.ServiceConfig{
		Directory: directoryClient,
		Repo:      repo,
		Sessions:  sessions,
		Metrics:   pipelineMetrics,
		Logger:    logger,
		Limit:     cfg.SearchLimit,
		ResultCap: cfg.SearchResultCap,
	})
	generator := outreach.NewGenerator(outreach.GeneratorConfig{
		LLM:       llm,
		Metrics:   pipelineMetrics,
		Logger:    logger,
		CharLimit: cfg.MessageCharLimit,
		Timeout:   cfg.GeminiTimeout,
	})

	r := router.New(&router.Config{
		Logger:             logger,
		ProspectsHandler:   prospects.NewHandler(service, logger),
		OutreachHandler:    outreach.NewHandler(generator, logger),
		MetricsHandler:     promhttp.Handler(),
		AuthSecret:         cfg.AuthJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
