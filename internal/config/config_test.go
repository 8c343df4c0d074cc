package config_test

import (
	"testing"

	"github.com/Shivanand-hulikatti/activity-signup/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "STORE", "SEED_FILE", "ENFORCE_CAPACITY",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Empty(t, cfg.SeedFile)
	assert.False(t, cfg.EnforceCapacity)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=activities sslmode=disable", cfg.DB.DSN())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STORE", "postgres")
	t.Setenv("SEED_FILE", "/etc/activities.hcl")
	t.Setenv("ENFORCE_CAPACITY", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, config.StorePostgres, cfg.Store)
	assert.Equal(t, "/etc/activities.hcl", cfg.SeedFile)
	assert.True(t, cfg.EnforceCapacity)
	assert.Equal(t, "pgx5://postgres:s3cr3t@db:5432/activities?sslmode=disable", cfg.DB.URL("pgx5"))
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE", "redis")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE")
}

func TestLoad_RejectsBadBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENFORCE_CAPACITY", "sometimes")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENFORCE_CAPACITY")
}
