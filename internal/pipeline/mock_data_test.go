package pipeline_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/couchcryptid/weather-forecast-etl/internal/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var daNang = domain.Location{Name: "Đà Nẵng", Latitude: 16.0544, Longitude: 108.2022}

// hourSummary captures the derived fields of one normalized hour.
type hourSummary struct {
	Hour      int
	Condition string
	Icon      string
	Source    string
	UVIndex   int
}

func summarize(days []domain.ForecastDay) [][]hourSummary {
	out := make([][]hourSummary, len(days))
	for i, d := range days {
		out[i] = make([]hourSummary, len(d.Hourly))
		for j, h := range d.Hourly {
			out[i][j] = hourSummary{Hour: h.Hour, Condition: h.Condition, Icon: h.Icon, Source: h.Source, UVIndex: h.UVIndex}
		}
	}
	return out
}

func TestForecastTransformer_WithFixtureData(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, time.June, 1, 5, 0, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	transformer := pipeline.NewTransformer(nil, daNang, slog.New(slog.NewTextHandler(io.Discard, nil)))

	cases := []struct {
		name         string
		fixture      string
		key          string
		headers      map[string]string
		wantLocation domain.Location
		wantCurrent  domain.CurrentWeather
		wantDetails  domain.WeatherDetails
		wantHours    [][]hourSummary
	}{
		{
			name:         "NASA POWER model output",
			fixture:      "nasa_power_danang.json",
			key:          "Đà Nẵng",
			wantLocation: daNang,
			wantCurrent: domain.CurrentWeather{
				Temperature: 27.4,
				Condition:   domain.ConditionCloudy,
				Icon:        domain.IconCloud,
				Timestamp:   "2024-06-01T06:00:00",
			},
			wantDetails: domain.WeatherDetails{
				Humidity:      82.1,
				WindSpeed:     2.3,
				Pressure:      1008.2,
				FeelsLike:     domain.CalculateFeelsLike(27.4, 82.1, 2.3),
				UVIndex:       4,
				Visibility:    10,
				Precipitation: 0,
			},
			wantHours: [][]hourSummary{
				{
					{6, domain.ConditionCloudy, domain.IconCloud, "api", 4},
					{12, domain.ConditionPartlyCloudy, domain.IconCloud, "api", 11},
					{18, domain.ConditionRainy, domain.IconRain, "api", 2},
					{23, domain.ConditionCloudy, domain.IconCloud, "api", 0},
				},
				{
					{9, domain.ConditionLightRain, domain.IconRain, "api", 11},
				},
			},
		},
		{
			name:         "mixed keys without location block",
			fixture:      "mixed_keys_hue.json",
			key:          "Huế",
			headers:      map[string]string{pipeline.HeaderLatitude: "16.4637", pipeline.HeaderLongitude: "107.5909"},
			wantLocation: domain.Location{Name: "Huế", Latitude: 16.4637, Longitude: 107.5909},
			wantCurrent: domain.CurrentWeather{
				Temperature: 8.5,
				Condition:   domain.ConditionRainy,
				Icon:        domain.IconRain,
				Timestamp:   "2024-12-15T08:00:00",
			},
			wantDetails: domain.WeatherDetails{
				Humidity:      90,
				WindSpeed:     6,
				WindDirection: 45,
				Pressure:      1013,
				FeelsLike:     domain.CalculateFeelsLike(8.5, 90, 6),
				UVIndex:       2,
				Visibility:    10,
			},
			wantHours: [][]hourSummary{
				{
					{8, domain.ConditionRainy, domain.IconRain, "openweather", 0},
					{13, domain.ConditionCloudy, domain.IconCloud, "api", 11},
					{16, "Sương mù", "fog", "api", 0},
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := rawEventFromFixture(t, tc.fixture, tc.key, tc.headers)

			out, err := transformer.Transform(context.Background(), raw)
			require.NoError(t, err)
			assert.Equal(t, []byte(tc.wantLocation.Name), out.Key)
			assert.Equal(t, tc.wantLocation.Name, out.Headers[domain.HeaderLocation])
			assert.Equal(t, "2024-06-01T05:00:00Z", out.Headers[domain.HeaderProcessedAt])
			assert.NotEmpty(t, out.Headers[domain.HeaderFetchID])

			var data domain.NormalizedWeatherData
			require.NoError(t, json.Unmarshal(out.Value, &data))

			assert.Equal(t, tc.wantLocation, data.Location)
			if diff := cmp.Diff(tc.wantCurrent, data.Current); diff != "" {
				t.Errorf("current mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantDetails, data.Details); diff != "" {
				t.Errorf("details mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantHours, summarize(data.Forecast)); diff != "" {
				t.Errorf("hourly mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForecastTransformer_FixtureWithEmptyHourly(t *testing.T) {
	transformer := pipeline.NewTransformer(nil, daNang, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := transformer.Transform(context.Background(), rawEventFromFixture(t, "empty_hourly.json", "Đà Nẵng", nil))
	require.ErrorIs(t, err, domain.ErrInvalidPayload)
	assert.Contains(t, err.Error(), "no hourly forecast data available")
}

func rawEventFromFixture(t *testing.T, name, key string, headers map[string]string) domain.RawEvent {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return domain.RawEvent{
		Key:     []byte(key),
		Value:   data,
		Headers: headers,
		Topic:   "raw-forecasts",
	}
}
