package domain

import (
	"context"
	"log/slog"
	"strings"
)

// ResolveFallbackLocation completes the location a caller asked for so that
// Assemble has something to fall back on when the payload omits its location
// block. An empty name becomes the configured default. Missing coordinates are
// copied from the default when the names match, otherwise looked up with the
// geocoder. Geocoding failures leave the coordinates unset.
func ResolveFallbackLocation(ctx context.Context, loc, defaults Location, geocoder Geocoder, logger *slog.Logger) Location {
	if strings.TrimSpace(loc.Name) == "" {
		loc.Name = defaults.Name
	}
	if loc.HasCoordinates() {
		return loc
	}
	if strings.EqualFold(loc.Name, defaults.Name) {
		loc.Latitude = defaults.Latitude
		loc.Longitude = defaults.Longitude
		return loc
	}
	if geocoder == nil {
		return loc
	}

	result, err := geocoder.ForwardGeocode(ctx, loc.Name)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"location", loc.Name,
			"error", err,
		)
		return loc
	}
	if result.Lat != 0 || result.Lon != 0 {
		loc.Latitude = result.Lat
		loc.Longitude = result.Lon
	}
	return loc
}
