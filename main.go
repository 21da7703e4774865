// @title Ashravi Analytics API
// @version 1.0
// @description Developmental scoring and analytics for children: questionnaire scoring, education trends and nutrition health.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/app"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/config"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// NewApp has already migrated the schema.
	if *migrateOnly {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		application.Close(ctx)
		logger.Log.Info("Database migration completed, exiting")
		return
	}

	application.Run()
}
