package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Reorder  ReorderConfig
	Job      JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// ReorderConfig surfaces the reorder engine's tunables. These were magic
// constants in earlier iterations of the product; they are configuration now.
type ReorderConfig struct {
	// DefaultUnitCost is charged for items with no recorded unit cost.
	DefaultUnitCost float64
	// DefaultLeadTimeDays applies to rules without a per-rule override.
	DefaultLeadTimeDays int
	// SnapshotTTL is how long a fetched inventory snapshot counts as fresh.
	SnapshotTTL time.Duration
	// SnapshotGC is how long a disused snapshot survives before eviction.
	SnapshotGC time.Duration
	// UsageWindowDays is the trailing window for average-usage computation.
	UsageWindowDays int
	// RequestTimeout bounds every storage round trip.
	RequestTimeout time.Duration
}

type JobConfig struct {
	SweepCron        string // cron spec for the auto-reorder sweep
	WarmSnapshotCron string
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ShopDesk Inventory API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "shopdesk"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Reorder: ReorderConfig{
			DefaultUnitCost:     getEnvFloat("REORDER_DEFAULT_UNIT_COST", 25.0),
			DefaultLeadTimeDays: getEnvInt("REORDER_DEFAULT_LEAD_TIME_DAYS", 7),
			SnapshotTTL:         getEnvDuration("SNAPSHOT_TTL", 5*time.Minute),
			SnapshotGC:          getEnvDuration("SNAPSHOT_GC", 10*time.Minute),
			UsageWindowDays:     getEnvInt("USAGE_WINDOW_DAYS", 30),
			RequestTimeout:      getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		Job: JobConfig{
			SweepCron:        getEnv("JOB_SWEEP_CRON", "0 */6 * * *"),
			WarmSnapshotCron: getEnv("JOB_WARM_SNAPSHOT_CRON", "*/30 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for obvious misconfiguration
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.Reorder.DefaultLeadTimeDays <= 0 {
		return fmt.Errorf("REORDER_DEFAULT_LEAD_TIME_DAYS must be positive")
	}
	if c.Reorder.SnapshotTTL <= 0 || c.Reorder.SnapshotGC < c.Reorder.SnapshotTTL {
		return fmt.Errorf("SNAPSHOT_GC must be at least SNAPSHOT_TTL")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
