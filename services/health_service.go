package services

import (
	"context"
	"time"

	"github.com/WeatherVane/weather-vane-backend/logger"
	"github.com/WeatherVane/weather-vane-backend/types"
	"go.uber.org/zap"
)

// Pinger is the connectivity check exposed by pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	db      Pinger
	version string
	log     *zap.SugaredLogger
}

func NewHealthService(db Pinger, version string) *HealthService {
	return &HealthService{
		db:      db,
		version: version,
		log:     logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	dbStatus := h.checkDatabase(ctx)
	components["database"] = dbStatus
	if dbStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *HealthService) checkDatabase(ctx context.Context) types.HealthComponent {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.db.Ping(checkCtx); err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "connection failed",
		}
	}

	return types.HealthComponent{Status: types.HealthStatusUp}
}
