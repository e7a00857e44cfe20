package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPayload marks a payload whose structure cannot yield a forecast.
var ErrInvalidPayload = errors.New("invalid forecast payload")

func invalidPayload(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, reason)
}

// ParsePayload decodes a raw forecast document into generic JSON values for
// Assemble. Syntax errors are returned as-is; structure is checked later.
func ParsePayload(data []byte) (any, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse raw payload: %w", err)
	}
	return payload, nil
}

// Assemble normalizes a decoded payload. Location fields missing from the
// payload are taken one by one from fallback. The first hour of the first day
// supplies both the current snapshot and the details block.
func Assemble(payload any, fallback Location) (NormalizedWeatherData, error) {
	root, ok := asObject(payload)
	if !ok {
		return NormalizedWeatherData{}, invalidPayload("payload is not an object")
	}

	days, ok := asList(root["forecast"])
	if !ok || len(days) == 0 {
		return NormalizedWeatherData{}, invalidPayload("no forecast data available")
	}
	firstDay, _ := asObject(days[0])
	firstHours, ok := asList(firstDay["hourly"])
	if !ok || len(firstHours) == 0 {
		return NormalizedWeatherData{}, invalidPayload("no hourly forecast data available")
	}

	current := asRecord(firstHours[0])

	forecast := make([]ForecastDay, len(days))
	for i, d := range days {
		forecast[i] = NormalizeDay(asRecord(d))
	}

	return NormalizedWeatherData{
		Location: resolveLocation(root["location"], fallback),
		Current:  BuildCurrent(current),
		Details:  BuildDetails(current),
		Forecast: forecast,
	}, nil
}

// NormalizeDay maps one raw day. A missing or malformed hourly list yields an
// empty day rather than an error; only the first day is checked structurally.
func NormalizeDay(day RawHourRecord) ForecastDay {
	hours, _ := asList(day["hourly"])
	out := ForecastDay{
		Date:   day.Text(FieldDate),
		Hourly: make([]NormalizedHourly, len(hours)),
	}
	for i, h := range hours {
		out.Hourly[i] = NormalizeHour(asRecord(h))
	}
	return out
}

// NormalizeHour reconciles one hourly record and derives its metrics.
func NormalizeHour(rec RawHourRecord) NormalizedHourly {
	condition := conditionOf(rec)
	return NormalizedHourly{
		Datetime:      rec.Text(FieldDatetime),
		Hour:          rec.Hour(),
		Temperature:   rec.Number(FieldTemperature),
		Condition:     condition,
		Precipitation: rec.Number(FieldPrecipitation),
		WindSpeed:     rec.Number(FieldWindSpeed),
		Humidity:      rec.Number(FieldHumidity),
		Pressure:      rec.Number(FieldPressure),
		Description:   rec.Text(FieldDescription),
		Icon:          iconOf(rec, condition),
		Source:        rec.Text(FieldSource),
		UVIndex:       CalculateUVIndex(rec.Number(FieldSolarRadiation), rec.Hour()),
	}
}

// BuildCurrent takes the headline snapshot from an hourly record. Without a
// datetime the timestamp is the current time.
func BuildCurrent(rec RawHourRecord) CurrentWeather {
	condition := conditionOf(rec)
	timestamp := rec.Text(FieldDatetime)
	if timestamp == "" {
		timestamp = clock.Now().UTC().Format(time.RFC3339)
	}
	return CurrentWeather{
		Temperature: rec.Number(FieldTemperature),
		Condition:   condition,
		Icon:        iconOf(rec, condition),
		Timestamp:   timestamp,
	}
}

// BuildDetails fills the details block from an hourly record. A UV index
// reported by the provider is preferred over the solar-radiation estimate.
func BuildDetails(rec RawHourRecord) WeatherDetails {
	temperature := rec.Number(FieldTemperature)
	humidity := rec.Number(FieldHumidity)
	windSpeed := rec.Number(FieldWindSpeed)

	uv, ok := rec.LookupNumber(FieldUVIndex)
	if !ok {
		uv = float64(CalculateUVIndex(rec.Number(FieldSolarRadiation), rec.Hour()))
	}

	return WeatherDetails{
		Humidity:      humidity,
		WindSpeed:     windSpeed,
		WindDirection: rec.Number(FieldWindDirection),
		Pressure:      rec.Number(FieldPressure),
		FeelsLike:     CalculateFeelsLike(temperature, humidity, windSpeed),
		UVIndex:       uv,
		Visibility:    rec.Number(FieldVisibility),
		Precipitation: rec.Number(FieldPrecipitation),
	}
}

func conditionOf(rec RawHourRecord) string {
	if c := rec.Text(FieldCondition); c != "" {
		return c
	}
	return DetermineWeatherCondition(rec)
}

func iconOf(rec RawHourRecord, condition string) string {
	if icon := rec.Text(FieldIcon); icon != "" {
		return icon
	}
	return IconForCondition(condition)
}

func resolveLocation(raw any, fallback Location) Location {
	block, ok := asObject(raw)
	if !ok {
		return fallback
	}
	loc := fallback
	if name, ok := block["name"].(string); ok && name != "" {
		loc.Name = name
	}
	if lat, ok := toNumber(block["latitude"]); ok && block["latitude"] != nil {
		loc.Latitude = lat
	}
	if lon, ok := toNumber(block["longitude"]); ok && block["longitude"] != nil {
		loc.Longitude = lon
	}
	return loc
}

func asObject(v any) (RawHourRecord, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawHourRecord:
		return m, true
	default:
		return nil, false
	}
}

// asRecord treats anything that is not an object as an empty record.
func asRecord(v any) RawHourRecord {
	m, _ := asObject(v)
	return m
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	case []RawHourRecord:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	default:
		return nil, false
	}
}
