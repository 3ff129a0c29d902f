// Package openweather implements current-conditions and forecast lookups
// against the OpenWeatherMap API, normalized into the application's report
// shape.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/WeatherVane/weather-vane-backend/errors"
	"github.com/WeatherVane/weather-vane-backend/internal/store"
	"github.com/WeatherVane/weather-vane-backend/logger"
	"github.com/WeatherVane/weather-vane-backend/types"
)

// ServiceName is the credential table entry used for API key lookups.
const ServiceName = "openweathermap"

// ForecastWindow is the fixed number of 3-hour forecast entries (24 hours).
const ForecastWindow = 8

// ClientInterface defines the weather operations used by the orchestrator.
type ClientInterface interface {
	CurrentConditions(ctx context.Context, lat, lon float64) (*types.CurrentConditions, error)
	Forecast(ctx context.Context, lat, lon float64) ([]types.ForecastEntry, error)
}

type Client struct {
	baseURL     string
	credentials store.CredentialStore
	httpClient  *http.Client
}

// NewClient creates a weather client. The API key is looked up from the
// credential store on every call; timeout is the fixed per-call bound.
func NewClient(baseURL string, credentials store.CredentialStore, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		credentials: credentials,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type weatherElement struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []weatherElement `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int `json:"visibility"`
	Sys        struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Dt       int64 `json:"dt"`
	Timezone int   `json:"timezone"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []weatherElement `json:"weather"`
		Wind    struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Pop float64 `json:"pop"`
	} `json:"list"`
}

// CurrentConditions fetches and normalizes the current weather for a
// coordinate pair.
func (c *Client) CurrentConditions(ctx context.Context, lat, lon float64) (*types.CurrentConditions, error) {
	var payload currentResponse
	if err := c.get(ctx, "/weather", lat, lon, nil, &payload); err != nil {
		return nil, err
	}

	if len(payload.Weather) == 0 {
		return nil, apperrors.New(apperrors.UpstreamError, "invalid weather response", "missing weather element")
	}

	return &types.CurrentConditions{
		Temperature: roundToInt(payload.Main.Temp),
		FeelsLike:   roundToInt(payload.Main.FeelsLike),
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		Description: payload.Weather[0].Description,
		Icon:        payload.Weather[0].Icon,
		WindSpeed:   payload.Wind.Speed,
		WindDeg:     payload.Wind.Deg,
		Clouds:      payload.Clouds.All,
		Visibility:  payload.Visibility,
		Sunrise:     localTimeString(payload.Sys.Sunrise),
		Sunset:      localTimeString(payload.Sys.Sunset),
		ObservedAt:  payload.Dt,
		Timezone:    payload.Timezone,
	}, nil
}

// Forecast fetches the 24-hour forecast window at 3-hour resolution. The
// result is truncated to ForecastWindow entries even if the provider returns
// more.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]types.ForecastEntry, error) {
	extra := url.Values{}
	extra.Add("cnt", fmt.Sprintf("%d", ForecastWindow))

	var payload forecastResponse
	if err := c.get(ctx, "/forecast", lat, lon, extra, &payload); err != nil {
		return nil, err
	}

	items := payload.List
	if len(items) > ForecastWindow {
		items = items[:ForecastWindow]
	}

	entries := make([]types.ForecastEntry, 0, len(items))
	for _, item := range items {
		if len(item.Weather) == 0 {
			return nil, apperrors.New(apperrors.UpstreamError, "invalid forecast response", "missing weather element")
		}
		entries = append(entries, types.ForecastEntry{
			ObservedAt:  item.Dt,
			Time:        localTimeString(item.Dt),
			Temperature: roundToInt(item.Main.Temp),
			FeelsLike:   roundToInt(item.Main.FeelsLike),
			Humidity:    item.Main.Humidity,
			Description: item.Weather[0].Description,
			Icon:        item.Weather[0].Icon,
			WindSpeed:   item.Wind.Speed,
			Pop:         roundToInt(item.Pop * 100),
		})
	}

	return entries, nil
}

// get performs one credentialed provider call and decodes the JSON body into
// out. No retry: a timeout or non-OK status surfaces immediately.
func (c *Client) get(ctx context.Context, path string, lat, lon float64, extra url.Values, out any) error {
	log := logger.GetLogger()

	apiKey, err := c.credentials.GetAPIKey(ctx, ServiceName)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Add("lat", fmt.Sprintf("%f", lat))
	params.Add("lon", fmt.Sprintf("%f", lon))
	params.Add("appid", apiKey)
	params.Add("units", "metric")
	for key, values := range extra {
		for _, value := range values {
			params.Add(key, value)
		}
	}

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ServerError, "failed to create weather request")
	}

	log.Debugw("Fetching weather data", "path", path, "lat", lat, "lon", lon)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.UpstreamError, "weather request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnw("Weather API returned non-OK status", "path", path, "statusCode", resp.StatusCode)
		return apperrors.Upstream("Weather", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, apperrors.UpstreamError, "invalid weather response")
	}
	return nil
}

func roundToInt(f float64) int {
	return int(math.Round(f))
}

// localTimeString formats an epoch timestamp in the server's local timezone.
// The reference behavior deliberately uses the server zone, not the queried
// location's zone.
func localTimeString(epoch int64) string {
	return time.Unix(epoch, 0).Format("3:04:05 PM")
}
