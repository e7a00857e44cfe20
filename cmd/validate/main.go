// Command validate checks a pair of forecast fixtures produced by genmock:
// that the normalized file still matches what the domain package produces
// from the raw file, and that every derived metric is within range.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw-json data/mock/raw_forecasts.json \
//	  -normalized-json data/mock/normalized_forecasts.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawJSON := flag.String("raw-json", "", "path to raw forecast payloads")
	normalizedJSON := flag.String("normalized-json", "", "path to normalized forecasts")
	flag.Parse()

	if *rawJSON == "" || *normalizedJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rawJSON, *normalizedJSON); code != 0 {
		os.Exit(code)
	}
}

func run(rawPath, normalizedPath string) int {
	// Same fixed clock as genmock so timestamp fallbacks reproduce.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.May, 31, 23, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== Forecast Fixture Validation ===")

	raw, err := loadJSON[any](rawPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw JSON: %v\n", err)
		return 1
	}
	normalized, err := loadJSON[domain.NormalizedWeatherData](normalizedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load normalized JSON: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateParity(raw, normalized),
		validateReproducible(raw, normalized),
		validateRanges(normalized),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}
	fmt.Printf("\nRecords: %d raw, %d normalized\n", len(raw), len(normalized))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// ── Phases ──

func validateParity(raw []any, normalized []domain.NormalizedWeatherData) *phase {
	p := &phase{name: "Raw/normalized record parity"}
	if len(raw) != len(normalized) {
		p.errorf("record count: raw=%d normalized=%d", len(raw), len(normalized))
	}
	return p
}

func validateReproducible(raw []any, normalized []domain.NormalizedWeatherData) *phase {
	p := &phase{name: "Normalization reproducible from raw"}
	for i := range min(len(raw), len(normalized)) {
		want := normalized[i]
		got, err := domain.Assemble(raw[i], want.Location)
		if err != nil {
			p.errorf("record %d (%s): %v", i, want.Location.Name, err)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			p.errorf("record %d (%s) differs (-fixture +assembled):\n%s", i, want.Location.Name, diff)
		}
	}
	return p
}

func validateRanges(normalized []domain.NormalizedWeatherData) *phase {
	p := &phase{name: "Derived metrics within range"}
	for i := range normalized {
		checkRecord(p.errorf, i, &normalized[i])
	}
	return p
}

func checkRecord(pf func(string, ...any), i int, f *domain.NormalizedWeatherData) {
	if len(f.Forecast) == 0 {
		pf("record %d: empty forecast", i)
	}
	if f.Current.Icon == "" || f.Current.Condition == "" {
		pf("record %d: current condition/icon missing", i)
	}
	for name, v := range map[string]float64{
		"temperature": f.Current.Temperature,
		"feelsLike":   f.Details.FeelsLike,
		"humidity":    f.Details.Humidity,
		"windSpeed":   f.Details.WindSpeed,
		"pressure":    f.Details.Pressure,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			pf("record %d: %s is not finite", i, name)
		}
	}
	if f.Details.UVIndex < 0 {
		pf("record %d: details uvIndex %v negative", i, f.Details.UVIndex)
	}

	for d, day := range f.Forecast {
		for h, hour := range day.Hourly {
			at := fmt.Sprintf("record %d day %d hour %d", i, d, h)
			if hour.Hour < 0 || hour.Hour > 23 {
				pf("%s: hour %d out of range", at, hour.Hour)
			}
			if hour.UVIndex < 0 || hour.UVIndex > 11 {
				pf("%s: uv_index %d out of range", at, hour.UVIndex)
			}
			if (hour.Hour < 6 || hour.Hour > 18) && hour.UVIndex != 0 {
				pf("%s: uv_index %d at night", at, hour.UVIndex)
			}
			if hour.Icon == "" || hour.Condition == "" || hour.Source == "" {
				pf("%s: condition/icon/source missing", at)
			}
		}
	}
}
