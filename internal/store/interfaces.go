// Package store defines the data access interfaces implemented by the
// postgres subpackage.
package store

import (
	"context"

	"github.com/WeatherVane/weather-vane-backend/types"
)

// CredentialStore looks up API keys for external providers by service name.
// Keys are read at call time so they can be rotated in the table without a
// restart.
type CredentialStore interface {
	// GetAPIKey returns the active API key for the named service. It fails
	// with a ConfigurationError when no active credential exists.
	GetAPIKey(ctx context.Context, serviceName string) (string, error)
}

// HistoryStore persists weather lookups. History is append-only: there are
// no update or delete operations.
type HistoryStore interface {
	// Append inserts one history record in a single atomic write and
	// returns it with the database-assigned ID and request timestamp.
	Append(ctx context.Context, input *types.SaveWeatherInput) (*types.HistoryRecord, error)
	// Recent returns up to limit records ordered newest-first. Non-positive
	// limits fall back to the store's default; the bound is enforced here,
	// not by the caller.
	Recent(ctx context.Context, limit int) ([]types.HistoryRecord, error)
}
