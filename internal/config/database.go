package config

import (
	"time"

	"shopdesk-backend/internal/infrastructure/database"
)

// PoolConfig maps the database section onto the connection-pool config of
// the postgres infrastructure layer. Pool tuning that has no business in the
// application config is read from its own environment variables here.
func (d DatabaseConfig) PoolConfig() *database.DBConfig {
	return &database.DBConfig{
		Host:     d.Host,
		Port:     d.Port,
		Username: d.User,
		Password: d.Password,
		DBName:   d.Database,
		SSLMode:  d.SSLMode,

		MaxConns:          int32(d.MaxConns),
		MinConns:          int32(d.MinConns),
		MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     getEnvInt("DB_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("DB_RETRY_DELAY", 2*time.Second),
		ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}
}
