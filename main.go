package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/WeatherVane/weather-vane-backend/config"
	"github.com/WeatherVane/weather-vane-backend/db"
	"github.com/WeatherVane/weather-vane-backend/handlers"
	storepg "github.com/WeatherVane/weather-vane-backend/internal/store/postgres"
	"github.com/WeatherVane/weather-vane-backend/logger"
	"github.com/WeatherVane/weather-vane-backend/pkg/mapbox"
	"github.com/WeatherVane/weather-vane-backend/pkg/openweather"
	"github.com/WeatherVane/weather-vane-backend/router"
	"github.com/WeatherVane/weather-vane-backend/services"
	"github.com/joho/godotenv"
)

// @title           Weather Vane API
// @version         1.0
// @description     Address-based weather lookup with persisted lookup history.
// @BasePath        /api
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Stores
	credentialStore := storepg.NewCredentialStore(pool)
	historyStore := storepg.NewHistoryStore(pool)

	// Provider clients share the configured call timeout
	timeout := time.Duration(cfg.Providers.TimeoutSeconds) * time.Second
	geocoder := mapbox.NewClient(cfg.Providers.GeocodingBaseURL, credentialStore, timeout)
	weather := openweather.NewClient(cfg.Providers.WeatherBaseURL, credentialStore, timeout)

	// Services
	reportService := services.NewReportService(geocoder, weather)
	healthService := services.NewHealthService(pool, cfg.Server.Version)

	// Handlers and router
	r := router.SetupRouter(router.Dependencies{
		Config:         cfg,
		WeatherHandler: handlers.NewWeatherHandler(reportService, historyStore),
		HealthHandler:  handlers.NewHealthHandler(healthService),
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	stop()
	log.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
	}
	log.Info("Server stopped")
}
