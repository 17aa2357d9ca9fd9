package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk-backend/internal/config"
)

func TestPoolConfigCarriesDatabaseSection(t *testing.T) {
	section := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "shopdesk",
		Password: "secret",
		Database: "shopdesk",
		SSLMode:  "require",
		MaxConns: 40,
		MinConns: 10,
	}

	pool := section.PoolConfig()

	assert.Equal(t, "db.internal", pool.Host)
	assert.Equal(t, 5433, pool.Port)
	assert.Equal(t, "shopdesk", pool.Username)
	assert.Equal(t, "secret", pool.Password)
	assert.Equal(t, "shopdesk", pool.DBName)
	assert.Equal(t, "require", pool.SSLMode)
	assert.Equal(t, int32(40), pool.MaxConns)
	assert.Equal(t, int32(10), pool.MinConns)
}

func TestLoadDefaultsSSLModeDisabled(t *testing.T) {
	t.Setenv("DB_SSLMODE", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "disable", cfg.Database.PoolConfig().SSLMode)
}

func TestValidateProductionRequirements(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.App.Environment = "production"
	cfg.JWT.Secret = "your-secret-key-change-in-production"
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "a-real-secret"
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())

	cfg.Database.Password = "pw"
	assert.NoError(t, cfg.Validate())
}
