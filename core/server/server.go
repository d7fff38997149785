package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-api/core/cache"
	"marketplace-api/core/config"
	"marketplace-api/core/database"
	"marketplace-api/core/logger"
	"marketplace-api/core/middleware"
	"marketplace-api/core/worker"
	"marketplace-api/modules/auth"
	"marketplace-api/modules/notification"
	"marketplace-api/modules/product"
	"marketplace-api/modules/shop"
	"marketplace-api/modules/training"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run boots the whole API: config, logging, database with migrations, cache,
// background worker and the HTTP server. Blocks until SIGINT/SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	c, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	mw := middleware.NewMiddleware(c)

	enqueuer := worker.NewClient(cfg.Redis)
	defer enqueuer.Close()

	var workerSrv *worker.Server
	if !cfg.Worker.Disabled {
		workerSrv = worker.NewServer(cfg)
	}

	registerModules(e, db, mw, c, enqueuer, workerSrv)

	if workerSrv != nil {
		if err := workerSrv.SchedulePeriodic(cfg.Worker.ResyncInterval, worker.NewCounterResyncTask()); err != nil {
			return fmt.Errorf("schedule counter resync: %w", err)
		}
		if err := workerSrv.Start(); err != nil {
			return fmt.Errorf("start worker: %w", err)
		}
		defer workerSrv.Shutdown()
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", err)
		}
	}()

	logger.Info("Server started", "port", cfg.Server.Port, "env", cfg.Server.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(ctx)
}

func registerModules(e *echo.Echo, db database.Database, mw *middleware.Middleware, c cache.Cache, enqueuer worker.Enqueuer, workerSrv *worker.Server) {
	auth.Init(e, db, mw, c)
	shop.Init(e, db, mw)
	product.Init(e, db, mw)

	if workerSrv != nil {
		training.Init(e, db, mw, c, enqueuer, workerSrv.Mux())
		notification.Init(e, db, mw, workerSrv.Mux())
	} else {
		training.Init(e, db, mw, c, enqueuer, nil)
		notification.Init(e, db, mw, nil)
	}
}
