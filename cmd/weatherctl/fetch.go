package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/weather-forecast-etl/internal/adapter/mapbox"
	"github.com/couchcryptid/weather-forecast-etl/internal/adapter/provider"
	"github.com/couchcryptid/weather-forecast-etl/internal/config"
	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/couchcryptid/weather-forecast-etl/internal/forecast"
	"github.com/couchcryptid/weather-forecast-etl/internal/observability"
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [location]",
		Short: "Fetch a forecast from the upstream provider and normalize it",
		Long:  "Fetches from PROVIDER_BASE_URL. Without a location the configured default is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if url, _ := cmd.Flags().GetString("provider-url"); url != "" {
				cfg.ProviderBaseURL = url
			}
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			cfg.LogFormat = "text"

			svc := newForecastService(cfg)

			var loc domain.Location
			if len(args) == 1 {
				loc.Name = args[0]
			}
			loc.Latitude, _ = cmd.Flags().GetFloat64("lat")
			loc.Longitude, _ = cmd.Flags().GetFloat64("lon")

			normalized, err := svc.Forecast(cmd.Context(), loc)
			if err != nil {
				return err
			}
			return render(cmd, normalized)
		},
	}
	cmd.Flags().String("provider-url", "", "override PROVIDER_BASE_URL")
	cmd.Flags().Float64("lat", 0, "latitude to use instead of geocoding")
	cmd.Flags().Float64("lon", 0, "longitude to use instead of geocoding")
	return cmd
}

func newForecastService(cfg *config.Config) *forecast.Service {
	logger := observability.NewLoggerTo(os.Stderr, cfg)
	metrics := observability.NewUnregisteredMetrics()

	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
	}

	upstream := provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderTimeout, cfg.ProviderRPS, cfg.ProviderBurst, metrics, logger)
	defaults := domain.Location{
		Name:      cfg.DefaultLocationName,
		Latitude:  cfg.DefaultLatitude,
		Longitude: cfg.DefaultLongitude,
	}
	return forecast.NewService(upstream, geocoder, defaults, logger)
}
