package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/linkora-app/linkora-backend/internal/config"
	"github.com/linkora-app/linkora-backend/internal/infrastructure/container"
)

// @title Linkora API
// @version 1.0
// @description Professional networking and matchmaking backend

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	go func() {
		if err := app.Server.Start(); err != nil {
			app.Log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("shutdown signal received")

	if err := app.Server.Shutdown(context.Background()); err != nil {
		app.Log.Error("graceful shutdown failed", "error", err)
	}

	if err := app.Close(); err != nil {
		app.Log.Error("failed to close resources", "error", err)
	}
}
