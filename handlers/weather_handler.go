package handlers

import (
	"net/http"
	"strconv"

	apperrors "github.com/WeatherVane/weather-vane-backend/errors"
	"github.com/WeatherVane/weather-vane-backend/internal/store"
	"github.com/WeatherVane/weather-vane-backend/services"
	"github.com/WeatherVane/weather-vane-backend/types"
	"github.com/gin-gonic/gin"
)

// WeatherHandler exposes the weather lookup and history endpoints.
type WeatherHandler struct {
	reportService *services.ReportService
	historyStore  store.HistoryStore
}

func NewWeatherHandler(reportService *services.ReportService, historyStore store.HistoryStore) *WeatherHandler {
	return &WeatherHandler{
		reportService: reportService,
		historyStore:  historyStore,
	}
}

type lookupRequest struct {
	Address string `json:"address"`
}

// GetWeather godoc
// @Summary Look up weather for an address
// @Description Geocodes a free-text address and returns current conditions plus the forecast window
// @Tags weather
// @Accept json
// @Produce json
// @Param body body lookupRequest true "Address to look up"
// @Success 200 {object} types.WeatherReport
// @Failure 400 {object} types.ErrorResponse "Address missing or blank"
// @Failure 404 {object} types.ErrorResponse "Address did not resolve to a location"
// @Failure 502 {object} types.ErrorResponse "Upstream provider failure"
// @Router /weather [post]
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Address is required", err.Error()))
		return
	}

	report, err := h.reportService.BuildReport(c.Request.Context(), req.Address)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetCurrentWeather godoc
// @Summary Current conditions for an address
// @Description Lightweight lookup returning current conditions without a forecast
// @Tags weather
// @Produce json
// @Param address path string true "Free-text address"
// @Success 200 {object} types.CurrentReport
// @Failure 404 {object} types.ErrorResponse
// @Failure 502 {object} types.ErrorResponse
// @Router /weather/{address} [get]
func (h *WeatherHandler) GetCurrentWeather(c *gin.Context) {
	address := c.Param("address")

	report, err := h.reportService.BuildCurrentReport(c.Request.Context(), address)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// SaveWeather godoc
// @Summary Save a weather lookup to history
// @Description Persists a lookup result as an append-only history record, capturing the caller IP
// @Tags weather
// @Accept json
// @Produce json
// @Param body body types.SaveWeatherInput true "Lookup result to persist"
// @Success 201 {object} types.SaveResponse
// @Failure 400 {object} types.ErrorResponse "Missing required fields"
// @Failure 500 {object} types.ErrorResponse
// @Router /weather/save [post]
func (h *WeatherHandler) SaveWeather(c *gin.Context) {
	var input types.SaveWeatherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Missing required data", err.Error()))
		return
	}
	input.UserIP = c.ClientIP()

	record, err := h.historyStore.Append(c.Request.Context(), &input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, types.SaveResponse{
		Success: true,
		Message: "Weather data saved successfully",
		ID:      record.ID,
	})
}

// GetHistory godoc
// @Summary Recent weather lookups
// @Description Returns the most recent history records, newest first
// @Tags weather
// @Produce json
// @Param limit query int false "Maximum records to return" default(50)
// @Success 200 {object} types.HistoryResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /weather/history [get]
func (h *WeatherHandler) GetHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}

	records, err := h.historyStore.Recent(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.HistoryResponse{
		Success: true,
		Count:   len(records),
		Data:    records,
	})
}
