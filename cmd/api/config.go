// cmd/api/config.go
// Startup configuration. Every flag takes its default from the environment,
// which main seeds from a .env file when one exists.
package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/aoideee/readinglog/internal/data"
)

// serverConfig holds all the values that can be tweaked at startup.
type serverConfig struct {
	port         int
	environment  string
	maxBodyBytes int64
	db           struct {
		driver string
		dsn    string
	}
	limiter struct {
		enabled bool
		rps     float64
		burst   int
	}
	cors struct {
		origin string
	}
}

// loadConfig parses args over defaults taken from getenv.
func loadConfig(args []string, getenv func(string) string) (serverConfig, error) {
	var cfg serverConfig

	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	port, err := strconv.Atoi(env("PORT", "3001"))
	if err != nil {
		return cfg, fmt.Errorf("PORT: %w", err)
	}
	maxBody, err := strconv.ParseInt(env("MAX_BODY_BYTES", "102400"), 10, 64)
	if err != nil {
		return cfg, fmt.Errorf("MAX_BODY_BYTES: %w", err)
	}
	limiterEnabled, err := strconv.ParseBool(env("LIMITER_ENABLED", "true"))
	if err != nil {
		return cfg, fmt.Errorf("LIMITER_ENABLED: %w", err)
	}
	limiterRPS, err := strconv.ParseFloat(env("LIMITER_RPS", "2"), 64)
	if err != nil {
		return cfg, fmt.Errorf("LIMITER_RPS: %w", err)
	}
	limiterBurst, err := strconv.Atoi(env("LIMITER_BURST", "4"))
	if err != nil {
		return cfg, fmt.Errorf("LIMITER_BURST: %w", err)
	}

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.IntVar(&cfg.port, "port", port, "Server port")
	fs.StringVar(&cfg.environment, "env", env("APP_ENV", "development"), "Environment (development|staging|production)")
	fs.Int64Var(&cfg.maxBodyBytes, "max-body", maxBody, "Maximum request body size in bytes")
	fs.StringVar(&cfg.db.driver, "db-driver", env("DB_DRIVER", "sqlite"), "Database driver (sqlite|postgres)")
	fs.StringVar(&cfg.db.dsn, "db-dsn", env("DB_DSN", "./books.db"), "Database DSN or SQLite file path")
	fs.BoolVar(&cfg.limiter.enabled, "limiter-enabled", limiterEnabled, "Enable per-IP rate limiter")
	fs.Float64Var(&cfg.limiter.rps, "limiter-rps", limiterRPS, "Rate limiter maximum requests per second")
	fs.IntVar(&cfg.limiter.burst, "limiter-burst", limiterBurst, "Rate limiter maximum burst")
	fs.StringVar(&cfg.cors.origin, "cors-origin", env("CORS_ORIGIN", "*"), "Allowed CORS origin (empty disables CORS)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if _, err := data.ParseDialect(cfg.db.driver); err != nil {
		return cfg, err
	}
	if cfg.maxBodyBytes <= 0 {
		return cfg, fmt.Errorf("max-body must be positive, got %d", cfg.maxBodyBytes)
	}
	return cfg, nil
}
