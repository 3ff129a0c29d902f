package middleware

import (
	"net/http"

	apperrors "github.com/WeatherVane/weather-vane-backend/errors"
	"github.com/WeatherVane/weather-vane-backend/logger"
	"github.com/WeatherVane/weather-vane-backend/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors attached to the gin context into JSON
// responses. AppError carries its own status code; everything else is a 500
// with a generic message so internals never leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*apperrors.AppError); ok {
			statusCode := appError.GetHTTPStatus()

			log.Errorw("Request failed",
				"type", string(appError.Type),
				"message", appError.Message,
				"detail", appError.Detail,
				"status", statusCode,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"client_ip", c.ClientIP(),
			)

			c.JSON(statusCode, types.ErrorResponse{Error: appError.Message})
			return
		}

		if c.Errors.Last().Type == gin.ErrorTypeBind {
			log.Warnw("Request binding failed",
				"error", err,
				"path", c.Request.URL.Path,
			)
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Failed to bind request"})
			return
		}

		log.Errorw("Unexpected server error",
			"error", err,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Internal server error"})
	}
}
