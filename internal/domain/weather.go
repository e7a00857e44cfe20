package domain

// RawHourRecord is one provider hour. No key is guaranteed and a logical
// field may appear under several names.
type RawHourRecord map[string]any

// Location identifies the place a forecast belongs to.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HasCoordinates reports whether either coordinate is set.
func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// NormalizedHourly is one hour after reconciliation and metric derivation.
type NormalizedHourly struct {
	Datetime      string  `json:"datetime"`
	Hour          int     `json:"hour"`
	Temperature   float64 `json:"temperature"`
	Condition     string  `json:"condition"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
	Humidity      float64 `json:"humidity"`
	Pressure      float64 `json:"pressure"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
	Source        string  `json:"source"`
	UVIndex       int     `json:"uv_index"`
}

// ForecastDay holds the hours of one date in input order.
type ForecastDay struct {
	Date   string             `json:"date"`
	Hourly []NormalizedHourly `json:"hourly"`
}

// WeatherDetails summarizes the current hour for the details panel.
type WeatherDetails struct {
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection float64 `json:"windDirection"`
	Pressure      float64 `json:"pressure"`
	FeelsLike     float64 `json:"feelsLike"`
	UVIndex       float64 `json:"uvIndex"`
	Visibility    float64 `json:"visibility"`
	Precipitation float64 `json:"precipitation"`
}

// CurrentWeather is the headline snapshot taken from the first forecast hour.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Icon        string  `json:"icon"`
	Timestamp   string  `json:"timestamp"`
}

// NormalizedWeatherData is the assembled result of one fetch cycle.
type NormalizedWeatherData struct {
	Location Location       `json:"location"`
	Current  CurrentWeather `json:"current"`
	Details  WeatherDetails `json:"details"`
	Forecast []ForecastDay  `json:"forecast"`
}
