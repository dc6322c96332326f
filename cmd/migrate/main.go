package main

import (
	"log"

	"campus-connect/internal/config"
	"campus-connect/internal/database"
	"campus-connect/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	appLogger := logger.New(cfg.App.LogLevel, cfg.App.Env)
	defer appLogger.Sync()

	appLogger.Info("Starting database migration...", "driver", cfg.Database.Driver)

	db, err := database.NewConnection(cfg.Database, false, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("Migration failed", err)
	}

	appLogger.Info("Database migration completed successfully!", "tables", len(database.Models()))
}
