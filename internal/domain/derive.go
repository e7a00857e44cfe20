package domain

import (
	"math"
	"strings"
)

// Condition labels produced by DetermineWeatherCondition.
const (
	ConditionRainy        = "Rainy"
	ConditionSnowy        = "Snowy"
	ConditionThunderstorm = "Thunderstorm"
	ConditionCloudy       = "Cloudy"
	ConditionLightRain    = "Light Rain"
	ConditionClear        = "Clear"
	ConditionPartlyCloudy = "Partly Cloudy"
)

// Icon keys produced by IconForCondition.
const (
	IconRain      = "cloud-rain"
	IconSnow      = "cloud-snow"
	IconLightning = "cloud-lightning"
	IconCloud     = "cloud"
	IconSun       = "sun"
	IconCloudSun  = "cloud-sun"
)

const (
	heatIndexThreshold = 27.0 // °C, at or above
	windChillThreshold = 10.0 // °C, at or below
	msToKmh            = 3.6

	solarPerUVUnit = 25.0 // W/m² per UV index step
	maxUVIndex     = 11
	firstDaylight  = 6
	lastDaylight   = 18
)

// Keyword sets, English then Vietnamese.
var (
	rainKeywords    = []string{"rain", "mưa"}
	snowKeywords    = []string{"snow", "tuyết"}
	thunderKeywords = []string{"thunder", "dông"}
	cloudKeywords   = []string{"cloud", "mây"}
	clearKeywords   = []string{"clear", "nắng"}
	partlyKeywords  = []string{"partly", "một phần"}
)

// CalculateFeelsLike returns the apparent temperature in °C. Humidity is a
// percentage and wind speed is in m/s. The heat index applies at or above
// 27 °C; wind chill applies at or below 10 °C when there is wind. Both
// results are rounded to one decimal.
func CalculateFeelsLike(temperature, humidity, windSpeed float64) float64 {
	switch {
	case temperature >= heatIndexThreshold:
		t, rh := temperature, humidity
		hi := -8.78469475556 +
			1.61139411*t +
			2.33854883889*rh -
			0.14611605*t*rh -
			0.012308094*t*t -
			0.0164248277778*rh*rh
		return roundTenth(hi)
	case temperature <= windChillThreshold && windSpeed > 0:
		t := temperature
		v16 := math.Pow(windSpeed*msToKmh, 0.16)
		wc := 13.12 + 0.6215*t - 11.37*v16 + 0.3965*t*v16
		return roundTenth(wc)
	default:
		return temperature
	}
}

// CalculateUVIndex estimates the UV index from solar radiation (W/m²) and the
// local hour. Night hours always return 0.
func CalculateUVIndex(solarRadiation float64, hour int) int {
	if hour < firstDaylight || hour > lastDaylight {
		return 0
	}
	// Clamp before converting; out-of-range float to int is undefined.
	uv := roundHalfUp(solarRadiation / solarPerUVUnit)
	return int(max(0, min(maxUVIndex, uv)))
}

type conditionSignals struct {
	description   string
	precipitation float64
	humidity      float64
	hasHumidity   bool
}

// conditionRules are evaluated top to bottom; the first match wins.
var conditionRules = []struct {
	label string
	match func(conditionSignals) bool
}{
	{ConditionRainy, func(s conditionSignals) bool { return containsAny(s.description, rainKeywords) }},
	{ConditionSnowy, func(s conditionSignals) bool { return containsAny(s.description, snowKeywords) }},
	{ConditionThunderstorm, func(s conditionSignals) bool { return containsAny(s.description, thunderKeywords) }},
	{ConditionCloudy, func(s conditionSignals) bool { return containsAny(s.description, cloudKeywords) }},
	{ConditionRainy, func(s conditionSignals) bool { return s.precipitation > 5 }},
	{ConditionLightRain, func(s conditionSignals) bool { return s.precipitation > 0.5 }},
	{ConditionCloudy, func(s conditionSignals) bool { return s.hasHumidity && s.humidity > 80 }},
	{ConditionClear, func(s conditionSignals) bool { return s.hasHumidity && s.humidity < 40 }},
}

// DetermineWeatherCondition classifies an hourly record. Keywords in the
// description take priority over the precipitation and humidity heuristics.
// The humidity rules only fire when the record reports humidity, so an empty
// record is Partly Cloudy rather than Clear.
func DetermineWeatherCondition(rec RawHourRecord) string {
	humidity, hasHumidity := rec.LookupNumber(FieldHumidity)
	s := conditionSignals{
		description:   strings.ToLower(rec.Text(FieldDescription)),
		precipitation: rec.Number(FieldPrecipitation),
		humidity:      humidity,
		hasHumidity:   hasHumidity,
	}
	for _, rule := range conditionRules {
		if rule.match(s) {
			return rule.label
		}
	}
	return ConditionPartlyCloudy
}

var iconRules = []struct {
	keywords []string
	icon     string
}{
	{rainKeywords, IconRain},
	{snowKeywords, IconSnow},
	{thunderKeywords, IconLightning},
	{cloudKeywords, IconCloud},
	{clearKeywords, IconSun},
	{partlyKeywords, IconCloudSun},
}

// IconForCondition maps a condition label to an icon key, falling back to sun.
// Note that "Partly Cloudy" matches the cloud rule first.
func IconForCondition(condition string) string {
	cond := strings.ToLower(condition)
	for _, rule := range iconRules {
		if containsAny(cond, rule.keywords) {
			return rule.icon
		}
	}
	return IconSun
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// roundHalfUp rounds ties toward positive infinity, so -2.5 → -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundTenth(x float64) float64 {
	return roundHalfUp(x*10) / 10
}
