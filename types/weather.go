package types

// Location is the result of geocoding a free-text address. It is produced
// once per request and never persisted on its own.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlaceName string  `json:"placeName"`
}

// Coordinates is the lat/lon pair embedded in a WeatherReport.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions holds normalized current weather for one location.
// Temperatures are whole degrees Celsius; sunrise/sunset are local-time
// strings formatted in the server's timezone.
type CurrentConditions struct {
	Temperature int     `json:"temperature"`
	FeelsLike   int     `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDeg     float64 `json:"wind_deg"`
	Clouds      int     `json:"clouds"`
	Visibility  int     `json:"visibility"`
	Sunrise     string  `json:"sunrise"`
	Sunset      string  `json:"sunset"`
	ObservedAt  int64   `json:"dt"`
	Timezone    int     `json:"timezone"`
}

// ForecastEntry is one 3-hour step of the 24-hour forecast window.
type ForecastEntry struct {
	ObservedAt  int64   `json:"dt"`
	Time        string  `json:"time"`
	Temperature int     `json:"temperature"`
	FeelsLike   int     `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	Pop         int     `json:"pop"`
}

// WeatherReport is the assembled response for one address at one point in
// time: geocoded coordinates plus current conditions and the forecast window.
// It is immutable once built.
type WeatherReport struct {
	Address     string             `json:"address"`
	Coordinates Coordinates        `json:"coordinates"`
	Current     *CurrentConditions `json:"current"`
	Forecast    []ForecastEntry    `json:"forecast"`
}

// CurrentReport is the reduced shape served by the GET endpoint: no forecast.
type CurrentReport struct {
	Address     string             `json:"address"`
	Coordinates Coordinates        `json:"coordinates"`
	Current     *CurrentConditions `json:"current"`
}
