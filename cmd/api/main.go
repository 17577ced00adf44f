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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/citizenai/commshub/internal/api/router"
	"github.com/citizenai/commshub/internal/calls"
	appconfig "github.com/citizenai/commshub/internal/config"
	"github.com/citizenai/commshub/internal/customers"
	"github.com/citizenai/commshub/internal/dashboard"
	"github.com/citizenai/commshub/internal/media"
	"github.com/citizenai/commshub/internal/messages"
	"github.com/citizenai/commshub/internal/observability/metrics"
	"github.com/citizenai/commshub/internal/webhook"
	"github.com/citizenai/commshub/internal/whatsapp"
	"github.com/citizenai/commshub/pkg/logging"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting commshub API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Message store: Postgres in real deployments, in-memory for dev.
	var store messages.Store
	if cfg.UseMemoryStore {
		logger.Warn("using in-memory message store, messages are not durable")
		store = messages.NewMemoryStore()
	} else {
		if cfg.DatabaseURL == "" {
			logger.Error("DATABASE_URL is required unless USE_MEMORY_STORE=true")
			os.Exit(1)
		}
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = messages.NewPgStore(pool)
	}

	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() { _ = redisClient.Close() }()
	customerStore := customers.NewStore(redisClient)

	graphClient, err := whatsapp.New(whatsapp.Config{
		BaseURL: cfg.GraphBaseURL,
		Token:   cfg.WhatsAppToken,
		Timeout: cfg.GraphTimeout,
		Logger:  logger.Logger,
	})
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}

	callsClient := calls.New(calls.Config{
		BaseURL: cfg.VoiceAPIBaseURL,
		Timeout: cfg.VoiceAPITimeout,
		Logger:  logger.Logger,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	webhookMetrics := metrics.NewWebhookMetrics(registry)

	normalizer := webhook.NewNormalizer(graphClient, logger)
	webhookHandler := webhook.NewHandler(cfg.WhatsAppVerifyToken, normalizer, store, logger, webhookMetrics)
	messagesHandler := messages.NewHandler(store, cfg.MessagePageSize, logger)
	mediaHandler := media.NewHandler(graphClient, logger.Logger, webhookMetrics)
	customersHandler := customers.NewHandler(customerStore, logger)
	dashboardHandler := dashboard.NewHandler(customerStore, callsClient, store, cfg.VoiceCallLimit, cfg.MessagePageSize, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		WebhookHandler:     webhookHandler,
		MessagesHandler:    messagesHandler,
		MediaHandler:       mediaHandler,
		CustomersHandler:   customersHandler,
		DashboardHandler:   dashboardHandler,
		AdminToken:         cfg.AdminToken,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
