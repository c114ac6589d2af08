package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/krishi-mitra/internal/chat"
	"github.com/suPer8Hu/krishi-mitra/internal/common"
	"github.com/suPer8Hu/krishi-mitra/internal/config"
	"github.com/suPer8Hu/krishi-mitra/internal/httpapi/middleware"
	"github.com/suPer8Hu/krishi-mitra/internal/knowledge"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/weather"
	"gorm.io/gorm"
)

type WeatherSource interface {
	Fetch(ctx context.Context, location string) (weather.Report, error)
}

type PriceSource interface {
	Prices(ctx context.Context, commodity, state, district string) (knowledge.PriceReport, error)
	MSPTable() knowledge.MSPInfo
}

// JobPublisher hands an async chat job to the worker queue.
type JobPublisher interface {
	PublishJob(ctx context.Context, jobID string) error
}

type Handler struct {
	DB      *gorm.DB
	Cfg     config.Config
	Log     *logger.Logger
	ChatSvc *chat.Service
	// Jobs is nil when RabbitMQ is not available; async chat is then refused.
	Jobs JobPublisher

	Weather   WeatherSource
	Mandi     PriceSource
	Schemes   *knowledge.SchemeDirectory
	Soil      *knowledge.SoilAdvisor
	Economics *knowledge.EconomicsCalculator
	Calendar  *knowledge.CropCalendar
	Alerts    *knowledge.AlertBoard
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}

func userIDFromContext(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// requireUser writes 401 and reports false when the request carries no user.
func requireUser(c *gin.Context) (uint64, bool) {
	uid, ok := userIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
	}
	return uid, ok
}
