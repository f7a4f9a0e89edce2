package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aduvert/recettes/config"
	"github.com/aduvert/recettes/internal/api"
	"github.com/aduvert/recettes/internal/database"
	"github.com/aduvert/recettes/internal/router"
	"github.com/aduvert/recettes/internal/server"
	"github.com/aduvert/recettes/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; write the failure by hand.
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}

	var images service.ImageStore
	switch cfg.Storage.Driver {
	case config.StorageS3:
		images, err = service.NewS3ImageStore(context.Background(), cfg.Storage.S3Bucket, cfg.Storage.S3Region, logger)
	default:
		images, err = service.NewLocalImageStore(cfg.Storage.UploadsDir, logger)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize image store")
	}

	recipes := service.NewRecipeService(db, logger)
	recipeHandler := api.NewRecipeHandler(recipes, images, logger)
	imageHandler := api.NewImageHandler(images, logger)

	engine := router.Setup(cfg, recipeHandler, imageHandler, images, logger)
	srv := server.New(cfg.Server.Address(), engine, db, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("shutdown error")
	}
	logger.Info().Msg("server stopped")
}
