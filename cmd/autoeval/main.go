package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/transparenta/autoeval/internal/api"
	"github.com/transparenta/autoeval/internal/catalog"
	"github.com/transparenta/autoeval/internal/config"
	"github.com/transparenta/autoeval/internal/events"
	"github.com/transparenta/autoeval/internal/report"
	"github.com/transparenta/autoeval/internal/scoring"
	"github.com/transparenta/autoeval/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog: loaded once, fatal when absent or malformed.
	cat, err := catalog.Load(cfg.Catalog.ItemsPath, cfg.Catalog.IndicatorsPath)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "items", cat.Len(), "categories", len(cat.CategoryOrder()))

	params := scoring.Params{
		GeneralWeight:      cfg.Scoring.GeneralWeight,
		SpecificWeight:     cfg.Scoring.SpecificWeight,
		YesValue:           cfg.Scoring.YesValue,
		NoValue:            cfg.Scoring.NoValue,
		IndeterminateValue: cfg.Scoring.IndeterminateValue,
	}
	if err := params.Validate(); err != nil {
		logger.Error("invalid scoring parameters", "error", err)
		os.Exit(1)
	}
	scorer := scoring.NewScorer(params)

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to nats")
		}
	}

	sessions := session.NewManager()
	reports := report.NewBuilder(cat)

	// API server
	router := api.NewRouter(cat, sessions, scorer, reports, cfg.Report.OutputDir, eventsClient, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
