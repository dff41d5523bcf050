package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachnet/internal/config"
	"coachnet/internal/dataset"
	mid "coachnet/internal/server/middleware"
	"coachnet/internal/util"
	"coachnet/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// Init loads the dataset manifest, builds the snapshot, and serves the API
// until SIGINT/SIGTERM.
func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	if manifestPath := util.GetEnv("MANIFEST_PATH"); manifestPath != "" {
		loaded, err := config.Load(manifestPath)
		if err != nil {
			logger.Fatal("Failed to load dataset manifest", "err", err)
		}
		cfg = loaded
	}

	ds, err := dataset.Load(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to load dataset", "err", err)
	}

	e.Use(mid.AppContextMiddleware(ds))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
