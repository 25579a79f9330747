package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/cache"
	"scheduling-gateway/core/config"
	"scheduling-gateway/core/logger"
	"scheduling-gateway/core/middleware"
	"scheduling-gateway/core/worker"
	"scheduling-gateway/modules/availability"
	"scheduling-gateway/modules/calendars"
	"scheduling-gateway/modules/locations"
	locService "scheduling-gateway/modules/locations/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run wires the service together and blocks until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mw := middleware.NewMiddleware(cfg)
	e.Use(mw.RequestID())
	e.Use(echomw.Recover())
	if len(cfg.CORS.AllowedOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: cfg.CORS.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		}))
	}

	// Shared infrastructure
	var c cache.Cache
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		redisCache = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		c = redisCache
		logger.Info("Server:Cache", "backend", "redis", "addr", cfg.Redis.Addr)
	} else {
		c = cache.NewMemoryCache()
		logger.Info("Server:Cache", "backend", "memory")
	}

	client := acuity.NewClient(cfg.Acuity)
	store := locService.NewConfigStore(cfg.Static)

	// Modules
	locations.Init(e, mw, store)
	calendarsService := calendars.Init(e, mw, client, c, store)
	availability.Init(e, mw, client, calendarsService)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"ok": true, "status": "healthy"})
	})

	// Background listing refresh rides on redis when it is available.
	var bg *worker.Worker
	if cfg.Redis.Addr != "" {
		bg = worker.New(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, calendarsService.Listings())
		go func() {
			if err := bg.Run(); err != nil {
				logger.Error("Server:Worker:Error", "error", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server:Start:Error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server:ShuttingDown")
	if bg != nil {
		bg.Shutdown()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
