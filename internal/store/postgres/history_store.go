package postgres

import (
	"context"

	apperrors "github.com/WeatherVane/weather-vane-backend/errors"
	"github.com/WeatherVane/weather-vane-backend/internal/store"
	"github.com/WeatherVane/weather-vane-backend/types"
)

// DefaultHistoryLimit bounds Recent when the caller supplies no usable limit.
const DefaultHistoryLimit = 50

// Ensure HistoryStore implements store.HistoryStore.
var _ store.HistoryStore = (*HistoryStore)(nil)

// HistoryStore persists weather lookups in the weather_history table.
type HistoryStore struct {
	db Querier
}

func NewHistoryStore(db Querier) *HistoryStore {
	return &HistoryStore{db: db}
}

// Append inserts one record; the database assigns id and request_timestamp.
func (s *HistoryStore) Append(ctx context.Context, input *types.SaveWeatherInput) (*types.HistoryRecord, error) {
	query := `
		INSERT INTO weather_history (address, latitude, longitude, weather_data, forecast_data, user_ip)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, request_timestamp
	`

	var forecastData any
	if len(input.ForecastData) > 0 {
		forecastData = []byte(input.ForecastData)
	}
	var userIP any
	if input.UserIP != "" {
		userIP = input.UserIP
	}

	record := &types.HistoryRecord{
		Address:      input.Address,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		WeatherData:  input.WeatherData,
		ForecastData: input.ForecastData,
		UserIP:       input.UserIP,
	}

	err := s.db.QueryRow(ctx, query,
		input.Address,
		input.Latitude,
		input.Longitude,
		[]byte(input.WeatherData),
		forecastData,
		userIP,
	).Scan(&record.ID, &record.RequestTimestamp)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return record, nil
}

// Recent returns up to limit records ordered by request_timestamp descending.
// The limit is clamped here before query construction; it is always bound as
// a parameter, never interpolated.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]types.HistoryRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `
		SELECT id, address, latitude, longitude, weather_data, forecast_data, request_timestamp, user_ip
		FROM weather_history
		ORDER BY request_timestamp DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	var records []types.HistoryRecord
	for rows.Next() {
		var record types.HistoryRecord
		var weatherData []byte
		var forecastData []byte
		var userIP *string
		err := rows.Scan(
			&record.ID,
			&record.Address,
			&record.Latitude,
			&record.Longitude,
			&weatherData,
			&forecastData,
			&record.RequestTimestamp,
			&userIP,
		)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		record.WeatherData = weatherData
		record.ForecastData = forecastData
		if userIP != nil {
			record.UserIP = *userIP
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return records, nil
}
