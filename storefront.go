//go:build !cli
// +build !cli

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"storefront.GO/api"
	_ "storefront.GO/api/cart"
	_ "storefront.GO/api/checkout"
	_ "storefront.GO/api/graphql"
	_ "storefront.GO/api/guest"
	_ "storefront.GO/api/health"
	_ "storefront.GO/api/realtime"
	_ "storefront.GO/api/session"
	_ "storefront.GO/api/wishlist"
	"storefront.GO/config"
	"storefront.GO/core/auth"
	"storefront.GO/core/storage"
	"storefront.GO/cron"
	"storefront.GO/cron/jobs"
	_ "storefront.GO/custom"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cfg := config.AppConfig

	logger := config.NewLogger(cfg.Debug)
	defer logger.Sync()

	kv, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	log.Printf("Storage driver %q ready.", cfg.StorageDriver)

	deps := api.NewDeps(cfg, kv, logger)

	// Scheduled jobs run in-process so they see the same storage.
	jobs.Use(kv, logger)
	if err := jobs.Configure(cfg); err != nil {
		log.Fatalf("failed to configure cron jobs: %v", err)
	}
	jobs.RunSessionExpiry()
	scheduler := cron.StartCron()
	defer scheduler.Stop()

	e := echo.New()
	e.Validator = api.NewValidator()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		ExposeHeaders: []string{api.HeaderGuestID},
	}))

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			logger.Debug("request", zap.String("path", c.Path()), zap.Int64("duration_ms", duration))
			return err
		}
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(api.GuestMiddleware())
	apiGroup.Use(auth.Middleware())

	api.ApplyModules(apiGroup, deps)
	api.ApplyRoutes(e, deps)

	fig := figure.NewFigure("Storefront", "slant", true)
	fig.Print()
	fmt.Printf("%s (%s)\n", cfg.AppName, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		log.Printf("Server running on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	// keep the memory backend across restarts
	jobs.RunStorageSnapshot()
}
