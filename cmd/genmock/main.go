// Command genmock generates deterministic raw forecast fixtures in the shape
// produced by the NASA POWER forecasting backend, together with their
// normalized counterparts. The normalized file is produced by the real domain
// package so it always matches pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -raw-out data/mock/raw_forecasts.json \
//	  -normalized-out data/mock/normalized_forecasts.json \
//	  -days 3 -seed 42
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/jonboulle/clockwork"
)

var baseDate = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

// city seeds the generator with a plausible climate for one location.
type city struct {
	location  domain.Location
	meanTemp  float64 // °C
	tempSwing float64
	humidity  float64 // %
	rainProb  float64
}

var cities = []city{
	{domain.Location{Name: "Đà Nẵng", Latitude: 16.0544, Longitude: 108.2022}, 29, 4, 75, 0.15},
	{domain.Location{Name: "Hà Nội", Latitude: 21.0285, Longitude: 105.8542}, 30, 5, 70, 0.2},
	{domain.Location{Name: "Hồ Chí Minh", Latitude: 10.8231, Longitude: 106.6297}, 31, 4, 78, 0.3},
	{domain.Location{Name: "Sa Pa", Latitude: 22.3364, Longitude: 103.8438}, 9, 5, 85, 0.25},
	{domain.Location{Name: "Huế", Latitude: 16.4637, Longitude: 107.5909}, 27, 4, 80, 0.35},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rawOut := flag.String("raw-out", "", "output path for raw forecast payloads")
	normalizedOut := flag.String("normalized-out", "", "output path for normalized forecasts")
	days := flag.Int("days", 3, "forecast days per city")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	if *rawOut == "" || *normalizedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -raw-out, -normalized-out")
	}
	if *days < 1 {
		return fmt.Errorf("-days must be at least 1")
	}

	// Set a fixed clock for reproducible timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(baseDate.Add(-time.Hour)))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewPCG(*seed, *seed))

	raw := make([]map[string]any, 0, len(cities))
	normalized := make([]domain.NormalizedWeatherData, 0, len(cities))
	for _, c := range cities {
		payload := generatePayload(rng, c, *days)
		data, err := domain.Assemble(payload, c.location)
		if err != nil {
			return fmt.Errorf("normalizing %s: %w", c.location.Name, err)
		}
		raw = append(raw, payload)
		normalized = append(normalized, data)
		log.Printf("%s: %d days", c.location.Name, len(data.Forecast))
	}

	if err := writeJSON(*rawOut, raw); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*normalizedOut, normalized); err != nil {
		return fmt.Errorf("writing normalized fixture: %w", err)
	}
	log.Printf("wrote normalized fixture: %s", *normalizedOut)

	printStats(normalized)
	return nil
}

// generatePayload builds one raw document with 24 hourly records per day.
// Temperature follows a diurnal curve peaking at 14h and solar radiation a
// half-sine between 6h and 18h.
func generatePayload(rng *rand.Rand, c city, days int) map[string]any {
	forecast := make([]any, days)
	for d := range days {
		date := baseDate.AddDate(0, 0, d)
		hourly := make([]any, 24)
		for h := range 24 {
			ts := date.Add(time.Duration(h) * time.Hour)
			diurnal := math.Cos(float64(h-14) / 24 * 2 * math.Pi)

			precipitation := 0.0
			if rng.Float64() < c.rainProb {
				precipitation = round1(rng.ExpFloat64() * 3)
			}
			solar := 0.0
			if h >= 6 && h <= 18 {
				solar = round1(900 * math.Sin(float64(h-6)/12*math.Pi) * (0.6 + 0.4*rng.Float64()))
			}

			hourly[h] = map[string]any{
				"datetime":        ts.Format("2006-01-02T15:04:05"),
				"temperature":     round1(c.meanTemp + c.tempSwing*diurnal + rng.NormFloat64()*0.5),
				"humidity":        round1(clamp(c.humidity-10*diurnal+rng.NormFloat64()*5, 5, 100)),
				"wind_speed":      round1(math.Abs(2 + rng.NormFloat64()*1.5)),
				"precipitation":   precipitation,
				"pressure":        round1(1010 + rng.NormFloat64()*3),
				"solar_radiation": solar,
			}
		}
		forecast[d] = map[string]any{
			"date":   date.Format(time.DateOnly),
			"hourly": hourly,
		}
	}
	return map[string]any{
		"location": map[string]any{
			"name":      c.location.Name,
			"latitude":  c.location.Latitude,
			"longitude": c.location.Longitude,
		},
		"forecast": forecast,
	}
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func clamp(x, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, x)) }

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type conditionCount struct {
	condition string
	count     int
}

func printStats(forecasts []domain.NormalizedWeatherData) {
	counts := map[string]int{}
	hours, maxUV := 0, 0
	for _, f := range forecasts {
		for _, day := range f.Forecast {
			for _, h := range day.Hourly {
				counts[h.Condition]++
				hours++
				maxUV = max(maxUV, h.UVIndex)
			}
		}
	}

	cc := make([]conditionCount, 0, len(counts))
	for c, n := range counts {
		cc = append(cc, conditionCount{c, n})
	}
	sort.Slice(cc, func(i, j int) bool { return cc[i].count > cc[j].count })

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Locations: %d, hours: %d, max UV: %d\n", len(forecasts), hours, maxUV)
	for _, c := range cc {
		fmt.Printf("  %-14s %d\n", c.condition, c.count)
	}
	for _, f := range forecasts {
		fmt.Printf("%s now: %.1f°C %s, feels like %.1f°C\n",
			f.Location.Name, f.Current.Temperature, f.Current.Condition, f.Details.FeelsLike)
	}
}
