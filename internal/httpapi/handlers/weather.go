package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/krishi-mitra/internal/common"
	"github.com/suPer8Hu/krishi-mitra/internal/weather"
)

func (h *Handler) GetWeather(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		location = weather.DefaultLocation
	}
	report, err := h.Weather.Fetch(c.Request.Context(), location)
	if err != nil {
		if errors.Is(err, weather.ErrNotConfigured) {
			common.Fail(c, http.StatusServiceUnavailable, 50303, "weather service is not configured")
			return
		}
		h.Log.Warn("weather fetch failed", "location", location, "error", err)
		common.Fail(c, http.StatusServiceUnavailable, 50304, "weather data unavailable")
		return
	}
	common.OK(c, weather.Summarize(report, time.Now()))
}
