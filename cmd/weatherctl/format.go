package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	formatJSON = "json"
	formatText = "text"
)

func render(cmd *cobra.Command, data domain.NormalizedWeatherData) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case formatJSON:
		return writeJSON(cmd.OutOrStdout(), data)
	case formatText:
		writeText(cmd.OutOrStdout(), data)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or text)", format)
	}
}

func writeJSON(w io.Writer, data domain.NormalizedWeatherData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// writeText prints a compact human-readable summary with one line per hour.
func writeText(w io.Writer, data domain.NormalizedWeatherData) {
	title := cases.Title(language.Und)

	loc := data.Location
	fmt.Fprintf(w, "%s (%.4f, %.4f)\n", loc.Name, loc.Latitude, loc.Longitude)

	c, d := data.Current, data.Details
	fmt.Fprintf(w, "Now %s: %.1f°C %s [%s], feels like %.1f°C\n",
		c.Timestamp, c.Temperature, title.String(c.Condition), c.Icon, d.FeelsLike)
	fmt.Fprintf(w, "Humidity %.0f%%  Wind %.1f m/s @ %.0f°  Pressure %.0f hPa  UV %.0f  Visibility %.0f km  Precip %.1f mm\n",
		d.Humidity, d.WindSpeed, d.WindDirection, d.Pressure, d.UVIndex, d.Visibility, d.Precipitation)

	for _, day := range data.Forecast {
		fmt.Fprintf(w, "\n%s\n", day.Date)
		for _, h := range day.Hourly {
			fmt.Fprintf(w, "  %02dh  %5.1f°C  %-14s %-16s UV %2d  %s\n",
				h.Hour, h.Temperature, title.String(h.Condition), h.Icon, h.UVIndex, h.Source)
		}
	}
}
