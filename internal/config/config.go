package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/infrastructure/database"
)

const (
	defaultJWTSecret  = "your-secret-key-change-in-production"
	defaultDBPassword = "secret"
)

// Config holds the whole application configuration.
// Populated from environment variables (optionally seeded by a .env file).
type Config struct {
	App        AppConfig
	Database   *database.DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Media      MediaConfig
	MinIO      MinIOConfig
	Pagination PaginationConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // hours
}

// MediaConfig selects where recipe images are kept.
type MediaConfig struct {
	Backend string // local | minio
	Root    string // directory for the local backend
	BaseURL string // public prefix for local files, e.g. /media
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type PaginationConfig struct {
	PageSize int
	MaxLimit int
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Foodgram API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY_HOURS", 24*7),
		},
		Media: MediaConfig{
			Backend: strings.ToLower(getEnv("MEDIA_BACKEND", "local")),
			Root:    getEnv("MEDIA_ROOT", "./media"),
			BaseURL: getEnv("MEDIA_BASE_URL", "/media"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "foodgram"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Pagination: PaginationConfig{
			PageSize: getEnvInt("PAGE_SIZE", 6),
			MaxLimit: getEnvInt("PAGE_MAX_LIMIT", 100),
		},
	}

	db, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}
	cfg.Database = db

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that must not silently fall back to defaults.
func (c *Config) Validate() error {
	switch c.Media.Backend {
	case "local", "minio":
	default:
		return fmt.Errorf("MEDIA_BACKEND must be local or minio, got %q", c.Media.Backend)
	}

	if c.Pagination.PageSize <= 0 || c.Pagination.MaxLimit < c.Pagination.PageSize {
		return fmt.Errorf("PAGE_SIZE must be positive and not exceed PAGE_MAX_LIMIT")
	}

	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" || c.Database.Password == defaultDBPassword {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Media.Backend == "minio" && c.MinIO.SecretKey == "minioadmin" {
			log.Warn().Msg("MINIO_SECRET_KEY uses the default value")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
