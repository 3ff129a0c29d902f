package services

import (
	"context"
	"strings"
	"sync"

	apperrors "github.com/WeatherVane/weather-vane-backend/errors"
	"github.com/WeatherVane/weather-vane-backend/logger"
	"github.com/WeatherVane/weather-vane-backend/pkg/mapbox"
	"github.com/WeatherVane/weather-vane-backend/pkg/openweather"
	"github.com/WeatherVane/weather-vane-backend/types"
)

// ReportService orchestrates the request pipeline: geocode an address, fetch
// current conditions and the forecast window concurrently, and assemble the
// immutable report.
type ReportService struct {
	geocoder mapbox.ClientInterface
	weather  openweather.ClientInterface
}

func NewReportService(geocoder mapbox.ClientInterface, weather openweather.ClientInterface) *ReportService {
	return &ReportService{
		geocoder: geocoder,
		weather:  weather,
	}
}

// BuildReport resolves the address and fetches current conditions plus the
// forecast. The two weather fetches run concurrently; either failure fails
// the whole operation, so a partial report is never returned. The report's
// coordinates always come from this call's geocoding result.
func (s *ReportService) BuildReport(ctx context.Context, address string) (*types.WeatherReport, error) {
	log := logger.GetLogger()

	if strings.TrimSpace(address) == "" {
		return nil, apperrors.ValidationFailed("Address is required", "address must not be blank")
	}

	location, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	var (
		current     *types.CurrentConditions
		currentErr  error
		forecast    []types.ForecastEntry
		forecastErr error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = s.weather.CurrentConditions(ctx, location.Latitude, location.Longitude)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = s.weather.Forecast(ctx, location.Latitude, location.Longitude)
	}()
	wg.Wait()

	if currentErr != nil {
		return nil, currentErr
	}
	if forecastErr != nil {
		return nil, forecastErr
	}

	log.Infow("Report assembled",
		"address", address,
		"placeName", location.PlaceName,
		"forecastEntries", len(forecast),
	)

	return &types.WeatherReport{
		Address: location.PlaceName,
		Coordinates: types.Coordinates{
			Latitude:  location.Latitude,
			Longitude: location.Longitude,
		},
		Current:  current,
		Forecast: forecast,
	}, nil
}

// BuildCurrentReport resolves the address and fetches current conditions
// only. It backs the lightweight GET lookup.
func (s *ReportService) BuildCurrentReport(ctx context.Context, address string) (*types.CurrentReport, error) {
	if strings.TrimSpace(address) == "" {
		return nil, apperrors.ValidationFailed("Address is required", "address must not be blank")
	}

	location, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	current, err := s.weather.CurrentConditions(ctx, location.Latitude, location.Longitude)
	if err != nil {
		return nil, err
	}

	return &types.CurrentReport{
		Address: location.PlaceName,
		Coordinates: types.Coordinates{
			Latitude:  location.Latitude,
			Longitude: location.Longitude,
		},
		Current: current,
	}, nil
}
