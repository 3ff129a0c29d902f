// Package mapbox implements address geocoding against the Mapbox Places API.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/WeatherVane/weather-vane-backend/errors"
	"github.com/WeatherVane/weather-vane-backend/internal/store"
	"github.com/WeatherVane/weather-vane-backend/logger"
	"github.com/WeatherVane/weather-vane-backend/types"
)

// ServiceName is the credential table entry used for API key lookups.
const ServiceName = "mapbox"

// ClientInterface defines the geocoding operations used by the orchestrator.
type ClientInterface interface {
	Geocode(ctx context.Context, address string) (*types.Location, error)
}

type Client struct {
	baseURL     string
	credentials store.CredentialStore
	httpClient  *http.Client
}

// NewClient creates a geocoding client. The API key is looked up from the
// credential store on every call; timeout is the fixed per-call bound.
func NewClient(baseURL string, credentials store.CredentialStore, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		credentials: credentials,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type geocodeResponse struct {
	Features []struct {
		Center    []float64 `json:"center"`
		PlaceName string    `json:"place_name"`
	} `json:"features"`
}

// Geocode resolves a free-text address to coordinates and a canonical place
// name. It always takes the provider's first (highest-confidence) match and
// never disambiguates multiple candidates.
func (c *Client) Geocode(ctx context.Context, address string) (*types.Location, error) {
	log := logger.GetLogger()

	apiKey, err := c.credentials.GetAPIKey(ctx, ServiceName)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("access_token", apiKey)
	params.Add("limit", "1")

	endpoint := fmt.Sprintf("%s/%s.json?%s", c.baseURL, url.PathEscape(address), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ServerError, "failed to create geocoding request")
	}

	log.Debugw("Geocoding address", "address", address)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.UpstreamError, "geocoding request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnw("Geocoding API returned non-OK status", "statusCode", resp.StatusCode)
		return nil, apperrors.Upstream("Geocoding", resp.StatusCode)
	}

	var geoResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return nil, apperrors.Wrap(err, apperrors.UpstreamError, "invalid geocoding response")
	}

	if len(geoResp.Features) == 0 {
		return nil, apperrors.NotFound("Location not found", address)
	}

	feature := geoResp.Features[0]
	if len(feature.Center) < 2 {
		return nil, apperrors.New(apperrors.UpstreamError, "invalid geocoding response", "feature center is incomplete")
	}

	location := &types.Location{
		Latitude:  feature.Center[1],
		Longitude: feature.Center[0],
		PlaceName: feature.PlaceName,
	}

	log.Debugw("Address resolved",
		"address", address,
		"placeName", location.PlaceName,
		"lat", location.Latitude,
		"lon", location.Longitude,
	)
	return location, nil
}
