package types

import (
	"encoding/json"
	"time"
)

// HistoryRecord is one persisted weather lookup. Records are append-only:
// the database assigns ID and RequestTimestamp, and rows are never updated
// or deleted afterwards.
type HistoryRecord struct {
	ID               int64           `json:"id"`
	Address          string          `json:"address"`
	Latitude         float64         `json:"latitude"`
	Longitude        float64         `json:"longitude"`
	WeatherData      json.RawMessage `json:"weather_data"`
	ForecastData     json.RawMessage `json:"forecast_data,omitempty"`
	RequestTimestamp time.Time       `json:"request_timestamp"`
	UserIP           string          `json:"user_ip,omitempty"`
}

// SaveWeatherInput is the payload accepted by the save endpoint. WeatherData
// is required; ForecastData may be empty when the caller only looked up
// current conditions.
type SaveWeatherInput struct {
	Address      string          `json:"address" binding:"required"`
	Latitude     float64         `json:"latitude" binding:"required"`
	Longitude    float64         `json:"longitude" binding:"required"`
	WeatherData  json.RawMessage `json:"weatherData" binding:"required"`
	ForecastData json.RawMessage `json:"forecastData,omitempty"`
	UserIP       string          `json:"-"`
}
