// Package forecast serves normalized forecasts on demand by fetching from the
// upstream provider and assembling the result.
package forecast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
)

// Fetcher retrieves the raw forecast document for a location name.
type Fetcher interface {
	FetchRawForecast(ctx context.Context, name string) (any, error)
}

// Service resolves the requested location, fetches its raw forecast, and
// normalizes it.
type Service struct {
	fetcher  Fetcher
	geocoder domain.Geocoder
	defaults domain.Location
	logger   *slog.Logger
}

// NewService creates a Service. A nil geocoder disables coordinate lookup for
// locations other than the default.
func NewService(fetcher Fetcher, geocoder domain.Geocoder, defaults domain.Location, logger *slog.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		geocoder: geocoder,
		defaults: defaults,
		logger:   logger,
	}
}

// Forecast returns the normalized forecast for loc. Errors from the fetcher
// are wrapped; structural problems surface as domain.ErrInvalidPayload.
func (s *Service) Forecast(ctx context.Context, loc domain.Location) (domain.NormalizedWeatherData, error) {
	loc = domain.ResolveFallbackLocation(ctx, loc, s.defaults, s.geocoder, s.logger)

	payload, err := s.fetcher.FetchRawForecast(ctx, loc.Name)
	if err != nil {
		return domain.NormalizedWeatherData{}, fmt.Errorf("fetch raw forecast: %w", err)
	}

	data, err := domain.Assemble(payload, loc)
	if err != nil {
		return domain.NormalizedWeatherData{}, err
	}

	s.logger.Debug("forecast assembled",
		"location", data.Location.Name,
		"days", len(data.Forecast),
	)
	return data, nil
}
