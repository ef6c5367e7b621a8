package main

import (
	"context"

	"github.com/conecta-social/conecta-server/backend/internal/handlers"
	"github.com/conecta-social/conecta-server/backend/internal/router"
	"github.com/conecta-social/conecta-server/backend/internal/storage"
	"github.com/conecta-social/conecta-server/backend/pkg/config"
	"github.com/conecta-social/conecta-server/backend/pkg/logger"
	"github.com/conecta-social/conecta-server/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	log := logger.New()

	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize databases")
	}
	defer db.CloseDB()

	// Media storage
	uploader, err := storage.NewGCSUploader(context.Background(), cfg.MediaBucket)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize media storage")
	}
	defer uploader.Close()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(log)
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db, cfg, uploader, log); err != nil {
		log.WithError(err).Fatal("failed to set up routes")
	}

	log.WithField("port", cfg.Port).Info("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
