package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/krishi-mitra/internal/common"
	"github.com/suPer8Hu/krishi-mitra/internal/config"
	"github.com/suPer8Hu/krishi-mitra/internal/httpapi/handlers"
	"github.com/suPer8Hu/krishi-mitra/internal/httpapi/middleware"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/metrics"
)

func NewRouter(h *handlers.Handler, cfg config.Config, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(metrics.Middleware())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.GET("/ping", h.Ping)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")

	// auth
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	// public reference data
	api.GET("/weather", h.GetWeather)
	api.GET("/crop-names", h.CropNames)
	api.GET("/mandi/prices", h.MandiPrices)
	api.GET("/mandi/msp", h.MSP)
	api.GET("/schemes", h.ListSchemes)
	api.GET("/schemes/:id", h.SchemeDetails)
	api.GET("/crop-calendar", h.CropCalendar)
	api.GET("/crop-calendar/season", h.CurrentSeason)
	api.GET("/soil/fertilizer", h.Fertilizer)
	api.POST("/soil/analyze", h.AnalyzeSoil)
	api.GET("/economics/calculate", h.EconomicsCalculate)
	api.GET("/economics/compare", h.EconomicsCompare)
	api.GET("/alerts", h.ListAlerts)

	authGroup := api.Group("/")
	authGroup.Use(middleware.AuthRequired(cfg.JWTSecret))
	authGroup.GET("/me", h.Me)
	authGroup.POST("/language/:language", h.SetLanguage)

	// Chat (JWT required, rate limited per user)
	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	chatGroup := authGroup.Group("/")
	chatGroup.Use(limiter.Middleware())
	chatGroup.POST("/chat", h.SendChat)
	chatGroup.POST("/chat/async", h.ChatAsync)

	authGroup.GET("/chat/jobs/:job_id", h.GetChatJob)
	authGroup.GET("/chat/history", h.ChatHistory)
	authGroup.POST("/chat/clear", h.ClearChat)

	authGroup.GET("/sessions", h.ListSessions)
	authGroup.POST("/sessions/new", h.NewSession)
	authGroup.POST("/sessions/:session_id/activate", h.ActivateSession)
	authGroup.GET("/sessions/:session_id/messages", h.SessionMessages)
	return r
}
