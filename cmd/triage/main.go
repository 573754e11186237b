package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MikeSquared-Agency/triage/internal/api"
	"github.com/MikeSquared-Agency/triage/internal/batch"
	"github.com/MikeSquared-Agency/triage/internal/config"
	"github.com/MikeSquared-Agency/triage/internal/draft"
	"github.com/MikeSquared-Agency/triage/internal/extractor"
	"github.com/MikeSquared-Agency/triage/internal/hermes"
	"github.com/MikeSquared-Agency/triage/internal/heuristic"
	"github.com/MikeSquared-Agency/triage/internal/llm"
	"github.com/MikeSquared-Agency/triage/internal/processor"
	"github.com/MikeSquared-Agency/triage/internal/prompt"
	"github.com/MikeSquared-Agency/triage/internal/rules"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)
	logger := slog.Default()

	logger.Info("triage starting", "port", cfg.Port, "provider", cfg.LLMProvider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Rule tables
	table, err := rules.Load(cfg.RulesFile)
	if err != nil {
		logger.Error("failed to load rules", "path", cfg.RulesFile, "error", err)
		os.Exit(1)
	}
	logger.Info("rules loaded", "version", table.Version)

	// Inference provider
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		logger.Error("failed to configure inference provider", "error", err)
		os.Exit(1)
	}

	// Response cache (optional)
	var cache llm.Cache
	if cfg.RedisURL != "" {
		rc, err := llm.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, running without response cache", "error", err)
			_ = rc.Close()
		} else {
			defer rc.Close()
			cache = rc
			logger.Info("response cache ready", "ttl", cfg.CacheTTL)
		}
	}

	completer := llm.Stack(provider, cfg, cache, logger)

	// Pipelines
	prompts := prompt.NewBuilder(table)
	heuristics := heuristic.New(table)

	var extOpts []extractor.Option
	if cfg.EnrichDueDates {
		extOpts = append(extOpts, extractor.WithDueDateEnrichment(heuristics))
	}
	ext := extractor.New(completer, prompts, logger, extOpts...)
	drafts := draft.New(completer, prompts, logger)
	aggregator := batch.New(ext, cfg.BatchConcurrency, logger)

	// NATS/Hermes (optional, HTTP works without it)
	var hermesClient *hermes.Client
	if cfg.NatsURL != "" {
		hermesClient, err = hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
		if err != nil {
			logger.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		logger.Info("NATS connected", "url", cfg.NatsURL)

		proc := processor.New(ext, hermesClient, logger, processor.WithTimeout(cfg.LLMTimeout*3))
		if err := hermesClient.Subscribe(hermes.SubjectEmailReceived, proc.HandleEmailReceived); err != nil {
			logger.Error("failed to subscribe to email events", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("NATS_URL not set, event intake disabled")
	}

	// HTTP API
	srv := api.NewServer(cfg.Port, api.Deps{
		Triager:    ext,
		Batch:      aggregator,
		Drafts:     drafts,
		Heuristics: heuristics,
		Logger:     logger,
	})
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	logger.Info("triage ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	if hermesClient != nil {
		if err := hermesClient.Drain(); err != nil {
			logger.Warn("NATS drain failed", "error", err)
			hermesClient.Close()
		}
	}
	cancel()
	logger.Info("triage stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
