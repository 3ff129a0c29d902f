package postgres

import (
	"context"
	"errors"

	apperrors "github.com/WeatherVane/weather-vane-backend/errors"
	"github.com/WeatherVane/weather-vane-backend/internal/store"
	"github.com/jackc/pgx/v5"
)

// Ensure CredentialStore implements store.CredentialStore.
var _ store.CredentialStore = (*CredentialStore)(nil)

// CredentialStore reads provider API keys from the api_credentials table.
type CredentialStore struct {
	db Querier
}

func NewCredentialStore(db Querier) *CredentialStore {
	return &CredentialStore{db: db}
}

// GetAPIKey returns the active API key for the named service. A missing or
// inactive credential is a configuration error, not a lookup miss.
func (s *CredentialStore) GetAPIKey(ctx context.Context, serviceName string) (string, error) {
	query := `
		SELECT api_key
		FROM api_credentials
		WHERE service_name = $1 AND is_active = TRUE
	`

	var apiKey string
	err := s.db.QueryRow(ctx, query, serviceName).Scan(&apiKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.MissingCredential(serviceName)
		}
		return "", apperrors.NewDatabaseError(err)
	}

	return apiKey, nil
}
