package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hypoplan/adapters/postgres"
	"hypoplan/internal/api"
	"hypoplan/internal/config"
	"hypoplan/internal/container"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	// Schema introspection is optional
	if appConfig.Database.Enabled() {
		db, err := postgres.Open(ctx, appConfig.Database.URL)
		if err != nil {
			log.Printf("Database unavailable, SQL generation runs without live schema: %v", err)
		} else if err := appContainer.InitWithDatabase(ctx, db); err != nil {
			db.Close()
			log.Printf("Database check failed, SQL generation runs without live schema: %v", err)
		}
	}

	if !appContainer.Deconstructor.InitializeModel(ctx) {
		log.Printf("Planner not ready at startup; POST /initialize to retry")
	}

	server := api.NewServer(api.Dependencies{
		Deconstructor: appContainer.Deconstructor,
		Planner:       appContainer.Planner,
		SQLService:    appContainer.SQLService,
	}, api.Options{
		MetricsEnabled: appConfig.Metrics.Enabled,
		MetricsPath:    appConfig.Metrics.Path,
	})

	log.Printf("Starting hypoplan server on port %s", appConfig.Server.Port)
	if err := server.Run(ctx, ":"+appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
