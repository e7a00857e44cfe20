package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/couchcryptid/weather-forecast-etl/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "archive.db"),
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func snapshot(t *testing.T, name string, temperature float64) domain.OutputEvent {
	t.Helper()
	out, err := domain.NewOutputEvent(domain.NormalizedWeatherData{
		Location: domain.Location{Name: name, Latitude: 16.0544, Longitude: 108.2022},
		Current:  domain.CurrentWeather{Temperature: temperature, Condition: domain.ConditionClear, Icon: domain.IconSun},
		Forecast: []domain.ForecastDay{{Date: "2024-06-01", Hourly: []domain.NormalizedHourly{}}},
	})
	require.NoError(t, err)
	return out
}

func TestArchive_LoadBatchAndHistory(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	require.NoError(t, a.LoadBatch(ctx, []domain.OutputEvent{
		snapshot(t, "Đà Nẵng", 29),
		snapshot(t, "Huế", 25),
	}))
	require.NoError(t, a.LoadBatch(ctx, []domain.OutputEvent{snapshot(t, "Đà Nẵng", 31)}))

	history, err := a.History(ctx, "Đà Nẵng", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 31.0, history[0].Current.Temperature, "newest first")
	assert.Equal(t, 29.0, history[1].Current.Temperature)
	assert.Equal(t, "Đà Nẵng", history[0].Location.Name)

	assert.Equal(t, 2.0, testutil.ToFloat64(a.metrics.ArchiveWrites.WithLabelValues("success")))
}

func TestArchive_HistoryLimit(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	for i := range 5 {
		require.NoError(t, a.LoadBatch(ctx, []domain.OutputEvent{snapshot(t, "Huế", float64(20+i))}))
	}

	history, err := a.History(ctx, "Huế", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 24.0, history[0].Current.Temperature)
	assert.Equal(t, 23.0, history[1].Current.Temperature)
}

func TestArchive_HistoryUnknownLocation(t *testing.T) {
	a := openTestArchive(t)

	history, err := a.History(context.Background(), "Atlantis", 5)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.NotNil(t, history)
}

func TestArchive_HistorySkipsUndecodableRows(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()

	require.NoError(t, a.LoadBatch(ctx, []domain.OutputEvent{{
		Key:     []byte("Huế"),
		Value:   []byte("not json"),
		Headers: map[string]string{domain.HeaderLocation: "Huế"},
	}}))
	require.NoError(t, a.LoadBatch(ctx, []domain.OutputEvent{snapshot(t, "Huế", 22)}))

	history, err := a.History(ctx, "Huế", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 22.0, history[0].Current.Temperature)
}

func TestArchive_LoadBatchAfterClose(t *testing.T) {
	a := openTestArchive(t)
	require.NoError(t, a.Close())

	err := a.LoadBatch(context.Background(), []domain.OutputEvent{snapshot(t, "Huế", 22)})
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.metrics.ArchiveWrites.WithLabelValues("error")))
}

func TestArchive_CheckReadiness(t *testing.T) {
	a := openTestArchive(t)
	require.NoError(t, a.CheckReadiness(context.Background()))
}
