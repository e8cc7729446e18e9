package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(nil, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.port)
	assert.Equal(t, "development", cfg.environment)
	assert.Equal(t, int64(102400), cfg.maxBodyBytes)
	assert.Equal(t, "sqlite", cfg.db.driver)
	assert.Equal(t, "./books.db", cfg.db.dsn)
	assert.True(t, cfg.limiter.enabled)
	assert.Equal(t, 2.0, cfg.limiter.rps)
	assert.Equal(t, 4, cfg.limiter.burst)
	assert.Equal(t, "*", cfg.cors.origin)
}

func TestLoadConfig_EnvironmentThenFlags(t *testing.T) {
	env := envMap(map[string]string{
		"PORT":            "8080",
		"DB_DRIVER":       "postgres",
		"DB_DSN":          "postgres://u:p@localhost/books?sslmode=disable",
		"LIMITER_ENABLED": "false",
	})

	cfg, err := loadConfig([]string{"-port", "9090"}, env)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, "postgres", cfg.db.driver)
	assert.Equal(t, "postgres://u:p@localhost/books?sslmode=disable", cfg.db.dsn)
	assert.False(t, cfg.limiter.enabled)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(nil, envMap(map[string]string{"PORT": "eighty"}))
	assert.Error(t, err)

	_, err = loadConfig([]string{"-db-driver", "mysql"}, envMap(nil))
	assert.Error(t, err)

	_, err = loadConfig([]string{"-max-body", "0"}, envMap(nil))
	assert.Error(t, err)
}
