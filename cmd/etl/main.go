package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/weather-forecast-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-forecast-etl/internal/adapter/kafka"
	"github.com/couchcryptid/weather-forecast-etl/internal/adapter/mapbox"
	"github.com/couchcryptid/weather-forecast-etl/internal/adapter/provider"
	"github.com/couchcryptid/weather-forecast-etl/internal/adapter/sqlite"
	"github.com/couchcryptid/weather-forecast-etl/internal/config"
	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/couchcryptid/weather-forecast-etl/internal/forecast"
	"github.com/couchcryptid/weather-forecast-etl/internal/observability"
	"github.com/couchcryptid/weather-forecast-etl/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	slog.SetDefault(logger)
	metrics := observability.NewMetrics()

	defaults := domain.Location{
		Name:      cfg.DefaultLocationName,
		Latitude:  cfg.DefaultLatitude,
		Longitude: cfg.DefaultLongitude,
	}

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	upstream := provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderTimeout, cfg.ProviderRPS, cfg.ProviderBurst, metrics, logger)
	forecasts := forecast.NewService(upstream, geocoder, defaults, logger)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	var (
		loader  pipeline.BatchLoader = writer
		history httpadapter.HistoryStore
		archive *sqlite.Archive
	)
	if cfg.ArchivePath != "" {
		archive, err = sqlite.Open(cfg.ArchivePath, metrics, logger)
		if err != nil {
			logger.Error("failed to open archive", "error", err)
			os.Exit(1)
		}
		loader = pipeline.MultiLoader{writer, archive}
		history = archive
	}

	transformer := pipeline.NewTransformer(geocoder, defaults, logger)
	p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, forecasts, history, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if archive != nil {
		if err := archive.Close(); err != nil {
			logger.Error("archive close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
