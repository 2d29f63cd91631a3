package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pageza/healthcoach/backend/internal/database"
	"github.com/pageza/healthcoach/backend/internal/logger"
)

// Creates or updates the food catalog schema without starting the service.
func main() {
	dsn := flag.String("dsn", os.Getenv("CATALOG_DSN"), "catalog database DSN (postgres URL or sqlite path)")
	flag.Parse()

	logger.Setup(os.Stdout, os.Getenv("LOG_LEVEL"), false)

	if *dsn == "" {
		slog.Error("CATALOG_DSN environment variable is not set")
		os.Exit(1)
	}

	db, err := database.OpenCatalog(*dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("All migrations applied successfully.")
}
