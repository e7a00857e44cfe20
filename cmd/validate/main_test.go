package main

import (
	"testing"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/stretchr/testify/assert"
)

func rawRecord() any {
	return map[string]any{
		"location": map[string]any{"name": "Huế", "latitude": 16.4637, "longitude": 107.5909},
		"forecast": []any{
			map[string]any{"date": "2024-06-01", "hourly": []any{
				map[string]any{"datetime": "2024-06-01T12:00:00", "temperature": 30.0, "humidity": 50.0, "solar_radiation": 500.0},
			}},
		},
	}
}

func TestValidateReproducible(t *testing.T) {
	want, err := domain.Assemble(rawRecord(), domain.Location{})
	assert.NoError(t, err)

	p := validateReproducible([]any{rawRecord()}, []domain.NormalizedWeatherData{want})
	assert.True(t, p.passed(), p.errors)

	want.Current.Temperature = 99
	p = validateReproducible([]any{rawRecord()}, []domain.NormalizedWeatherData{want})
	assert.False(t, p.passed())
	assert.Contains(t, p.errors[0], "Huế")
}

func TestValidateParity(t *testing.T) {
	assert.True(t, validateParity([]any{1}, []domain.NormalizedWeatherData{{}}).passed())
	assert.False(t, validateParity([]any{1, 2}, []domain.NormalizedWeatherData{{}}).passed())
}

func TestValidateRanges(t *testing.T) {
	good := domain.NormalizedWeatherData{
		Current: domain.CurrentWeather{Condition: domain.ConditionClear, Icon: domain.IconSun},
		Forecast: []domain.ForecastDay{{Hourly: []domain.NormalizedHourly{
			{Hour: 12, UVIndex: 9, Condition: domain.ConditionClear, Icon: domain.IconSun, Source: "api"},
		}}},
	}
	assert.True(t, validateRanges([]domain.NormalizedWeatherData{good}).passed())

	bad := good
	bad.Forecast = []domain.ForecastDay{{Hourly: []domain.NormalizedHourly{
		{Hour: 23, UVIndex: 3, Condition: domain.ConditionClear, Icon: domain.IconSun, Source: "api"},
		{Hour: 30, UVIndex: 12},
	}}}
	p := validateRanges([]domain.NormalizedWeatherData{bad})
	assert.Len(t, p.errors, 5)
}
