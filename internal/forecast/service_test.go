package forecast_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/couchcryptid/weather-forecast-etl/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var daNang = domain.Location{Name: "Đà Nẵng", Latitude: 16.0544, Longitude: 108.2022}

type stubFetcher struct {
	payload   any
	err       error
	requested []string
}

func (f *stubFetcher) FetchRawForecast(_ context.Context, name string) (any, error) {
	f.requested = append(f.requested, name)
	return f.payload, f.err
}

type stubGeocoder struct {
	result domain.GeocodingResult
	err    error
}

func (g *stubGeocoder) ForwardGeocode(_ context.Context, _ string) (domain.GeocodingResult, error) {
	return g.result, g.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func minimalPayload() map[string]any {
	return map[string]any{
		"forecast": []any{
			map[string]any{
				"date": "2024-06-01",
				"hourly": []any{
					map[string]any{"datetime": "2024-06-01T12:00:00", "temperature": 31.0, "humidity": 70.0},
				},
			},
		},
	}
}

func TestService_Forecast_DefaultLocation(t *testing.T) {
	fetcher := &stubFetcher{payload: minimalPayload()}
	svc := forecast.NewService(fetcher, nil, daNang, discardLogger())

	data, err := svc.Forecast(context.Background(), domain.Location{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Đà Nẵng"}, fetcher.requested)
	assert.Equal(t, daNang, data.Location)
	assert.Equal(t, 31.0, data.Current.Temperature)
	assert.Equal(t, "2024-06-01T12:00:00", data.Current.Timestamp)
}

func TestService_Forecast_GeocodesOtherLocations(t *testing.T) {
	fetcher := &stubFetcher{payload: minimalPayload()}
	geocoder := &stubGeocoder{result: domain.GeocodingResult{Lat: 16.4637, Lon: 107.5909, FormattedAddress: "Huế, Vietnam"}}
	svc := forecast.NewService(fetcher, geocoder, daNang, discardLogger())

	data, err := svc.Forecast(context.Background(), domain.Location{Name: "Huế"})
	require.NoError(t, err)

	assert.Equal(t, domain.Location{Name: "Huế", Latitude: 16.4637, Longitude: 107.5909}, data.Location)
}

func TestService_Forecast_PayloadLocationWins(t *testing.T) {
	payload := minimalPayload()
	payload["location"] = map[string]any{"name": "Hội An", "latitude": 15.88}
	svc := forecast.NewService(&stubFetcher{payload: payload}, nil, daNang, discardLogger())

	data, err := svc.Forecast(context.Background(), domain.Location{Name: "Hội An", Longitude: 108.33})
	require.NoError(t, err)

	assert.Equal(t, domain.Location{Name: "Hội An", Latitude: 15.88, Longitude: 108.33}, data.Location)
}

func TestService_Forecast_FetchError(t *testing.T) {
	upstream := errors.New("connection refused")
	svc := forecast.NewService(&stubFetcher{err: upstream}, nil, daNang, discardLogger())

	_, err := svc.Forecast(context.Background(), domain.Location{Name: "Huế"})
	require.ErrorIs(t, err, upstream)
	assert.Contains(t, err.Error(), "fetch raw forecast")
}

func TestService_Forecast_InvalidPayload(t *testing.T) {
	svc := forecast.NewService(&stubFetcher{payload: map[string]any{"forecast": []any{}}}, nil, daNang, discardLogger())

	_, err := svc.Forecast(context.Background(), domain.Location{Name: "Huế"})
	require.ErrorIs(t, err, domain.ErrInvalidPayload)
}
