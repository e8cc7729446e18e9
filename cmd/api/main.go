// Package main is the entry point for the reading-log API server.
// It wires together configuration, the database, and the HTTP router.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/aoideee/readinglog/internal/data"
)

// appVersion is the current version of the API, shown in logs and /healthcheck.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
type applicationDependencies struct {
	config  serverConfig
	logger  *slog.Logger
	models  data.Models
	metrics *metrics
	now     func() time.Time
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}

	settings, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(2)
	}

	dialect, _ := data.ParseDialect(settings.db.driver)

	db, err := data.Open(context.Background(), dialect, settings.db.dsn)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database connection established", "driver", dialect)

	// Schema changes must be complete before the listener accepts traffic.
	if err := data.Migrate(context.Background(), db, dialect); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	logger.Info("database migrations applied", "steps", len(data.Migrations()))

	app := &applicationDependencies{
		config:  settings,
		logger:  logger,
		models:  data.NewModels(db, dialect),
		metrics: newMetrics(),
		now:     time.Now,
	}

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
