package services

import (
	"context"
	"errors"
	"testing"

	"github.com/WeatherVane/weather-vane-backend/types"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error {
	return s.err
}

func TestCheckHealthUp(t *testing.T) {
	svc := NewHealthService(&stubPinger{}, "1.0.0")

	health := svc.CheckHealth(context.Background())

	assert.Equal(t, types.HealthStatusUp, health.Status)
	assert.Equal(t, types.HealthStatusUp, health.Components["database"].Status)
	assert.Equal(t, "1.0.0", health.Version)
	assert.NotEmpty(t, health.Timestamp)
}

func TestCheckHealthDatabaseDown(t *testing.T) {
	svc := NewHealthService(&stubPinger{err: errors.New("connection refused")}, "1.0.0")

	health := svc.CheckHealth(context.Background())

	assert.Equal(t, types.HealthStatusDown, health.Status)
	assert.Equal(t, types.HealthStatusDown, health.Components["database"].Status)
	assert.Equal(t, "connection failed", health.Components["database"].Details)
}
