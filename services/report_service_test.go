package services

import (
	"context"
	"sync/atomic"
	"testing"

	apperrors "github.com/WeatherVane/weather-vane-backend/errors"
	"github.com/WeatherVane/weather-vane-backend/logger"
	"github.com/WeatherVane/weather-vane-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

type stubGeocoder struct {
	location *types.Location
	err      error
	calls    int32
}

func (s *stubGeocoder) Geocode(ctx context.Context, address string) (*types.Location, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return s.location, nil
}

type stubWeather struct {
	current       *types.CurrentConditions
	currentErr    error
	forecast      []types.ForecastEntry
	forecastErr   error
	currentCalls  int32
	forecastCalls int32
}

func (s *stubWeather) CurrentConditions(ctx context.Context, lat, lon float64) (*types.CurrentConditions, error) {
	atomic.AddInt32(&s.currentCalls, 1)
	if s.currentErr != nil {
		return nil, s.currentErr
	}
	return s.current, nil
}

func (s *stubWeather) Forecast(ctx context.Context, lat, lon float64) ([]types.ForecastEntry, error) {
	atomic.AddInt32(&s.forecastCalls, 1)
	if s.forecastErr != nil {
		return nil, s.forecastErr
	}
	return s.forecast, nil
}

func googleplexLocation() *types.Location {
	return &types.Location{
		Latitude:  37.4224,
		Longitude: -122.0841,
		PlaceName: "1600 Amphitheatre Parkway, Mountain View, CA",
	}
}

func sampleForecast(n int) []types.ForecastEntry {
	entries := make([]types.ForecastEntry, n)
	for i := range entries {
		entries[i] = types.ForecastEntry{
			ObservedAt:  1700000000 + int64(i)*10800,
			Time:        "3:00:00 PM",
			Temperature: 18 + i,
			Description: "scattered clouds",
			Icon:        "03d",
		}
	}
	return entries
}

func TestBuildReport(t *testing.T) {
	geo := &stubGeocoder{location: googleplexLocation()}
	weather := &stubWeather{
		current: &types.CurrentConditions{
			Temperature: 18,
			FeelsLike:   17,
			Humidity:    62,
			Description: "clear sky",
			Icon:        "01d",
		},
		forecast: sampleForecast(8),
	}
	svc := NewReportService(geo, weather)

	report, err := svc.BuildReport(context.Background(), "1600 Amphitheatre Parkway")
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "1600 Amphitheatre Parkway, Mountain View, CA", report.Address)
	assert.Equal(t, 37.4224, report.Coordinates.Latitude)
	assert.Equal(t, -122.0841, report.Coordinates.Longitude)
	assert.Equal(t, 18, report.Current.Temperature)
	assert.Len(t, report.Forecast, 8)

	assert.EqualValues(t, 1, geo.calls)
	assert.EqualValues(t, 1, weather.currentCalls)
	assert.EqualValues(t, 1, weather.forecastCalls)
}

func TestBuildReportBlankAddress(t *testing.T) {
	for _, address := range []string{"", "   ", "\t\n"} {
		geo := &stubGeocoder{location: googleplexLocation()}
		weather := &stubWeather{}
		svc := NewReportService(geo, weather)

		report, err := svc.BuildReport(context.Background(), address)
		require.Error(t, err)
		assert.Nil(t, report)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ValidationError, appErr.Type)

		assert.EqualValues(t, 0, geo.calls, "geocoder must not be called for a blank address")
		assert.EqualValues(t, 0, weather.currentCalls)
		assert.EqualValues(t, 0, weather.forecastCalls)
	}
}

func TestBuildReportGeocodeFailure(t *testing.T) {
	geo := &stubGeocoder{err: apperrors.NotFound("Location not found", "nowhere")}
	weather := &stubWeather{}
	svc := NewReportService(geo, weather)

	report, err := svc.BuildReport(context.Background(), "nowhere")
	require.Error(t, err)
	assert.Nil(t, report)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)

	assert.EqualValues(t, 0, weather.currentCalls, "weather must not be fetched when geocoding fails")
	assert.EqualValues(t, 0, weather.forecastCalls)
}

func TestBuildReportCurrentFailure(t *testing.T) {
	geo := &stubGeocoder{location: googleplexLocation()}
	weather := &stubWeather{
		currentErr: apperrors.Upstream("Weather", 503),
		forecast:   sampleForecast(8),
	}
	svc := NewReportService(geo, weather)

	report, err := svc.BuildReport(context.Background(), "1600 Amphitheatre Parkway")
	require.Error(t, err)
	assert.Nil(t, report, "a partial report must never be returned")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.UpstreamError, appErr.Type)
	assert.Equal(t, 503, appErr.UpstreamStatus)
}

func TestBuildReportForecastFailure(t *testing.T) {
	geo := &stubGeocoder{location: googleplexLocation()}
	weather := &stubWeather{
		current:     &types.CurrentConditions{Temperature: 18},
		forecastErr: apperrors.Upstream("Forecast", 500),
	}
	svc := NewReportService(geo, weather)

	report, err := svc.BuildReport(context.Background(), "1600 Amphitheatre Parkway")
	require.Error(t, err)
	assert.Nil(t, report)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.UpstreamError, appErr.Type)
}

func TestBuildCurrentReport(t *testing.T) {
	geo := &stubGeocoder{location: googleplexLocation()}
	weather := &stubWeather{
		current: &types.CurrentConditions{
			Temperature: 22,
			Description: "few clouds",
			Icon:        "02d",
		},
	}
	svc := NewReportService(geo, weather)

	report, err := svc.BuildCurrentReport(context.Background(), "1600 Amphitheatre Parkway")
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "1600 Amphitheatre Parkway, Mountain View, CA", report.Address)
	assert.Equal(t, 37.4224, report.Coordinates.Latitude)
	assert.Equal(t, 22, report.Current.Temperature)
	assert.EqualValues(t, 0, weather.forecastCalls, "the lightweight lookup must not fetch a forecast")
}

func TestBuildCurrentReportBlankAddress(t *testing.T) {
	geo := &stubGeocoder{location: googleplexLocation()}
	svc := NewReportService(geo, &stubWeather{})

	report, err := svc.BuildCurrentReport(context.Background(), "  ")
	require.Error(t, err)
	assert.Nil(t, report)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
	assert.EqualValues(t, 0, geo.calls)
}
