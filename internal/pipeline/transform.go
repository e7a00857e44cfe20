package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
)

// Message headers a producer may set to pin the fallback coordinates.
const (
	HeaderLatitude  = "latitude"
	HeaderLongitude = "longitude"
)

// ForecastTransformer implements Transformer by normalizing raw forecast
// payloads, with optional geocoding of the fallback location.
type ForecastTransformer struct {
	geocoder domain.Geocoder
	defaults domain.Location
	logger   *slog.Logger
}

// NewTransformer creates a ForecastTransformer. Pass a nil geocoder to disable
// geocoding of locations other than the default.
func NewTransformer(geocoder domain.Geocoder, defaults domain.Location, logger *slog.Logger) *ForecastTransformer {
	return &ForecastTransformer{
		geocoder: geocoder,
		defaults: defaults,
		logger:   logger,
	}
}

func (t *ForecastTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	payload, err := domain.ParsePayload(raw.Value)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	fallback := domain.ResolveFallbackLocation(ctx, t.requestedLocation(raw), t.defaults, t.geocoder, t.logger)

	data, err := domain.Assemble(payload, fallback)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	return domain.NewOutputEvent(data)
}

// requestedLocation reads the location the producer asked for from the message
// key and coordinate headers. Unparseable coordinates are ignored.
func (t *ForecastTransformer) requestedLocation(raw domain.RawEvent) domain.Location {
	loc := domain.Location{Name: strings.TrimSpace(string(raw.Key))}
	loc.Latitude = t.headerFloat(raw, HeaderLatitude)
	loc.Longitude = t.headerFloat(raw, HeaderLongitude)
	return loc
}

func (t *ForecastTransformer) headerFloat(raw domain.RawEvent, key string) float64 {
	v, ok := raw.Headers[key]
	if !ok || v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		t.logger.Debug("ignoring unparseable coordinate header",
			"header", key,
			"value", v,
			"offset", raw.Offset,
		)
		return 0
	}
	return f
}
