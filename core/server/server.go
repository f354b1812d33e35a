package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calendar-insights/core/cache"
	"calendar-insights/core/config"
	"calendar-insights/core/database"
	"calendar-insights/core/logger"
	"calendar-insights/core/middleware"
	"calendar-insights/modules/directory"
	"calendar-insights/modules/insights"
	"calendar-insights/modules/meeting"

	"github.com/labstack/echo/v4"
)

// Run boots the analytics API: config, database, schema, cache, modules.
// It blocks until SIGINT/SIGTERM, then shuts down gracefully.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.InitDB(cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}
	if err := database.RunMigrations(ctx, db); err != nil {
		return err
	}

	c := cache.New(cfg.Redis)
	defer c.Close()

	e := echo.New()
	e.HideBanner = true

	mw := middleware.New()
	e.Use(mw.Recover())
	e.Use(mw.RequestLogger())

	registerHealth(e, db)
	meeting.Init(e, db, c, mw)
	directory.Init(e, db, mw)
	insights.Init(e, db, mw)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run:StartFailed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server:Run:ShuttingDown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func registerHealth(e *echo.Echo, db database.IDatabase) {
	e.GET("/healthz", func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}

		var meetings int
		_ = db.GetContext(ctx, &meetings, `SELECT COUNT(*) FROM meetings`)
		return c.JSON(http.StatusOK, map[string]any{
			"status":   "healthy",
			"meetings": meetings,
		})
	})
}
