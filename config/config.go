package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment represents the current runtime environment.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from ENV.
func GetEnvironment() Environment {
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional; empty host disables caching)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Auth configuration
	JWTSecret string
	// TokenTTL is how long issued bearer tokens stay valid. The default
	// matches the long-lived development value; set TOKEN_TTL_SECONDS=3600
	// for production deployments.
	TokenTTL time.Duration

	// GitHub repository proxy
	GithubToken string

	// Avatar storage (optional; empty bucket disables uploads)
	S3Bucket  string
	AWSRegion string
}

// LoadConfig builds a Config from environment variables. Sensitive values
// may instead be supplied as files via the corresponding *_FILE variable,
// the way Docker secrets are mounted.
func LoadConfig() (*Config, error) {
	ttlSeconds, err := strconv.Atoi(getEnv("TOKEN_TTL_SECONDS", "360000"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_SECONDS: %w", err)
	}

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		redisDB, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	cfg := &Config{
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "5000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getSecret("DB_USER", "postgres"),
		DBPassword: getSecret("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "devconnector"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getSecret("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: getSecret("JWT_SECRET", ""),
		TokenTTL:  time.Duration(ttlSeconds) * time.Second,

		GithubToken: getSecret("GITHUB_TOKEN", ""),

		S3Bucket:  os.Getenv("S3_BUCKET_NAME"),
		AWSRegion: os.Getenv("AWS_REGION"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getSecret(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if file := os.Getenv(key + "_FILE"); file != "" {
		content, err := os.ReadFile(file)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}
