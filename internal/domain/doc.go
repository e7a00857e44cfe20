// Package domain normalizes raw hourly forecast payloads into the weather
// dashboard model.
//
// # Data Source
//
// Payloads come from the forecast API of the weather backend
// (GET /api/weather/forecast/{location}), which blends NASA POWER reanalysis
// with model output. The backend does not enforce a schema: a payload is a
// location block plus a list of days, each holding a list of hourly records,
// and hourly records use whatever key names the producing job emitted.
//
// # Key Conventions
//
// Logical fields are resolved from candidate keys in priority order (see
// [numericFields] and [stringFields]):
//
//	temperature     temperature, temp           default 0 °C
//	humidity        humidity                    default 0 %
//	wind speed      wind_speed, windSpeed       default 0 m/s
//	wind direction  wind_direction, windDirection default 0°
//	pressure        pressure                    default 1013 hPa
//	precipitation   precipitation               default 0 mm
//	solar radiation solar_radiation, CLRSKY_SFC_SW_DWN default 0 W/m²
//	visibility      visibility                  default 10 km
//
// A key holding null is skipped in favour of the next candidate. A value that
// cannot be read as a number yields the field default, never NaN.
//
// Hour of day:
//
//	Taken from "hour" when present, otherwise from the two digits after the
//	"T" separator of "datetime" ("2024-06-01T14:00" → 14). Anything unreadable
//	resolves to 0. The hour gates the UV estimate, so a missing timestamp is
//	treated as midnight.
//
// # Derived Metrics
//
//	Feels like:  heat index at ≥27 °C, wind chill at ≤10 °C with wind, else raw.
//	UV index:    0 outside 06–18h, else round(solar/25) clamped to [0, 11].
//	Condition:   description keywords (English and Vietnamese) first, then
//	             precipitation and humidity thresholds.
//	Icon:        keyword lookup over the condition label.
//
// # Failure Model
//
// Only structural problems fail: a payload that is not an object, or one
// without a non-empty forecast list whose first day has a non-empty hourly
// list. These wrap [ErrInvalidPayload]. Every field-level gap is filled with a
// default.
package domain
