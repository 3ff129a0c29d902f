package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/WeatherVane/weather-vane-backend/errors"
	"github.com/WeatherVane/weather-vane-backend/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

type stubCredentials struct {
	key string
	err error
}

func (s *stubCredentials) GetAPIKey(ctx context.Context, serviceName string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.key, nil
}

func TestClient_Geocode(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves first match", func(t *testing.T) {
		var gotQuery atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery.Store(r.URL.RawQuery)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"features": [
					{"center": [-122.0841, 37.4224], "place_name": "1600 Amphitheatre Parkway, Mountain View, CA"},
					{"center": [0, 0], "place_name": "should be ignored"}
				]
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, &stubCredentials{key: "pk.test"}, 5*time.Second)
		location, err := client.Geocode(ctx, "1600 Amphitheatre Parkway")
		require.NoError(t, err)

		// center is [lon, lat]
		assert.Equal(t, 37.4224, location.Latitude)
		assert.Equal(t, -122.0841, location.Longitude)
		assert.Equal(t, "1600 Amphitheatre Parkway, Mountain View, CA", location.PlaceName)

		query := gotQuery.Load().(string)
		assert.Contains(t, query, "access_token=pk.test")
		assert.Contains(t, query, "limit=1")
	})

	t.Run("zero matches", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"features": []}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, &stubCredentials{key: "pk.test"}, 5*time.Second)
		_, err := client.Geocode(ctx, "nowhere at all")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.NotFoundError, appErr.Type)
		assert.Equal(t, "Location not found", appErr.Message)
	})

	t.Run("provider failure carries status code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClient(server.URL, &stubCredentials{key: "pk.bad"}, 5*time.Second)
		_, err := client.Geocode(ctx, "Berlin")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.UpstreamError, appErr.Type)
		assert.Equal(t, http.StatusUnauthorized, appErr.UpstreamStatus)
	})

	t.Run("missing credential aborts before any call", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		client := NewClient(server.URL, &stubCredentials{err: apperrors.MissingCredential(ServiceName)}, 5*time.Second)
		_, err := client.Geocode(ctx, "Berlin")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ConfigurationError, appErr.Type)
		assert.Zero(t, calls.Load())
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"features": [{`))
		}))
		defer server.Close()

		client := NewClient(server.URL, &stubCredentials{key: "pk.test"}, 5*time.Second)
		_, err := client.Geocode(ctx, "Berlin")
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.UpstreamError, appErr.Type)
	})
}
