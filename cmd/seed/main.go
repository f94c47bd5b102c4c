// Package main seeds the catalog database with sample genres and books.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openshelf/openshelf-server/internal/config"
	"github.com/openshelf/openshelf-server/internal/logger"
	"github.com/openshelf/openshelf-server/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	dbPath := filepath.Join(cfg.Data.Path, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		log.Fatal("Failed to open database", "path", dbPath, "error", err)
	}
	defer db.Close()

	if err := db.SeedSampleData(context.Background()); err != nil {
		log.Fatal("Failed to seed sample data", "error", err)
	}

	log.Info("Sample catalog data ready", "path", dbPath)
}
