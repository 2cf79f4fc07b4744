package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "marketplace", cfg.Database.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Host)
	assert.Equal(t, 168, cfg.JWT.ExpiryHours)
	assert.Equal(t, "localhost:9000", cfg.MinIO.Endpoint)
	assert.Equal(t, "marketplace", cfg.MinIO.Bucket)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("MINIO_BUCKET", "uploads")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "uploads", cfg.MinIO.Bucket)
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "pw",
		Database: "marketplace", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:pw@db:5432/marketplace?sslmode=disable", c.DSN())
}
