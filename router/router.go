package router

import (
	"github.com/WeatherVane/weather-vane-backend/config"
	"github.com/WeatherVane/weather-vane-backend/handlers"
	"github.com/WeatherVane/weather-vane-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config         *config.Config
	WeatherHandler *handlers.WeatherHandler
	HealthHandler  *handlers.HealthHandler
	Logger         *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and Metrics Routes
	r.GET("/health", deps.HealthHandler.HealthCheck)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/weather", deps.WeatherHandler.GetWeather)
		api.POST("/weather/save", deps.WeatherHandler.SaveWeather)
		// /history must be registered alongside /:address; gin resolves the
		// static segment first.
		api.GET("/weather/history", deps.WeatherHandler.GetHistory)
		api.GET("/weather/:address", deps.WeatherHandler.GetCurrentWeather)
	}

	return r
}
