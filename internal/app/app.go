// Package app builds the shared object graph used by the server and the
// worker binaries.
package app

import (
	"context"
	"fmt"

	"github.com/suPer8Hu/krishi-mitra/internal/advisor"
	"github.com/suPer8Hu/krishi-mitra/internal/ai"
	"github.com/suPer8Hu/krishi-mitra/internal/cache"
	"github.com/suPer8Hu/krishi-mitra/internal/chat"
	"github.com/suPer8Hu/krishi-mitra/internal/config"
	"github.com/suPer8Hu/krishi-mitra/internal/db"
	"github.com/suPer8Hu/krishi-mitra/internal/httpapi/handlers"
	"github.com/suPer8Hu/krishi-mitra/internal/knowledge"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/models"
	"github.com/suPer8Hu/krishi-mitra/internal/store/redisstore"
	"github.com/suPer8Hu/krishi-mitra/internal/weather"
	"gorm.io/gorm"
)

type App struct {
	Cfg   config.Config
	Log   *logger.Logger
	DB    *gorm.DB
	Redis *redisstore.Store // nil when CACHE_BACKEND=memory or Redis is down

	Weather   *weather.Client
	Mandi     *knowledge.MandiService
	Schemes   *knowledge.SchemeDirectory
	Soil      *knowledge.SoilAdvisor
	Economics *knowledge.EconomicsCalculator
	Calendar  *knowledge.CropCalendar
	Alerts    *knowledge.AlertBoard

	Advisor *advisor.Advisor
	Chat    *chat.Service
}

// Models lists every table the binaries migrate.
func Models() []any {
	return append([]any{&models.User{}}, chat.Models()...)
}

func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(gdb, Models()...); err != nil {
		return nil, err
	}
	a := &App{Cfg: cfg, Log: log, DB: gdb}

	if cfg.CacheBackend == "redis" {
		rds, err := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, using in-process cache and sessions", "addr", cfg.RedisAddr, "error", err)
		} else {
			a.Redis = rds
		}
	}

	weatherCache, mandiCache := a.caches()
	a.Weather = weather.NewClient(cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey, weatherCache, log)
	a.Mandi = knowledge.NewMandiService(cfg.MandiBaseURL, cfg.DataGovAPIKey, mandiCache, log)
	a.Schemes = knowledge.NewSchemeDirectory()
	a.Soil = knowledge.NewSoilAdvisor()
	a.Economics = knowledge.NewEconomicsCalculator()
	a.Calendar = knowledge.NewCropCalendar(nil)
	a.Alerts = knowledge.NewAlertBoard(nil)

	a.Advisor = advisor.New(advisor.Deps{
		Generator: newGateway(ctx, cfg, log),
		Weather:   a.Weather,
		Mandi:     a.Mandi,
		Schemes:   a.Schemes,
		Soil:      a.Soil,
		Economics: a.Economics,
		Calendar:  a.Calendar,
		Log:       log,
	})

	var active chat.ActiveSessions = chat.NewMemoryActiveSessions()
	if a.Redis != nil {
		active = a.Redis
	}
	a.Chat = chat.NewService(chat.NewRepo(gdb), a.Advisor, active, cfg.SessionLimitMB, cfg.ChatHistoryLimit, log)
	return a, nil
}

func (a *App) caches() (cache.Cache[weather.Report], cache.Cache[knowledge.PriceReport]) {
	if a.Redis == nil {
		return cache.NewMemory[weather.Report](), cache.NewMemory[knowledge.PriceReport]()
	}
	return cache.NewRedis[weather.Report](a.Redis.Client(), "krishi:weather:", a.Log),
		cache.NewRedis[knowledge.PriceReport](a.Redis.Client(), "krishi:mandi:", a.Log)
}

// newGateway uses the configured provider as primary and the other Gemini
// path as fallback.
func newGateway(ctx context.Context, cfg config.Config, log *logger.Logger) *ai.Gateway {
	reg := ai.NewGeminiRegistry(cfg.GeminiAPIKey, cfg.GeminiRESTBaseURL)
	fallback := ai.ProviderGeminiREST
	if cfg.AIPrimaryProvider == ai.ProviderGeminiREST {
		fallback = ai.ProviderGenAI
	}
	return ai.NewGatewayFromRegistry(ctx, reg, cfg.AIPrimaryProvider, fallback, cfg.GeminiModel, log)
}

// Handler wires the HTTP handlers; jobs may be nil.
func (a *App) Handler(jobs handlers.JobPublisher) *handlers.Handler {
	return &handlers.Handler{
		DB:        a.DB,
		Cfg:       a.Cfg,
		Log:       a.Log.With("component", "http"),
		ChatSvc:   a.Chat,
		Jobs:      jobs,
		Weather:   a.Weather,
		Mandi:     a.Mandi,
		Schemes:   a.Schemes,
		Soil:      a.Soil,
		Economics: a.Economics,
		Calendar:  a.Calendar,
		Alerts:    a.Alerts,
	}
}

func (a *App) Close() error {
	var firstErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close db: %w", err)
		}
	}
	return firstErr
}
