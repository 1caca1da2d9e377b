package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// AI completion endpoint configuration
	OpenRouterAPIKey string
	OpenRouterAPIURL string
	OpenRouterModel  string
}

// LoadConfig creates a new Config instance with values from environment
// variables. Outside production a .env file is loaded first if present.
func LoadConfig() (*Config, error) {
	if GetEnvironment() != Production {
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerPort: getEnvOr("SERVER_PORT", "8080"),
		ServerHost: getEnvOr("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnvOr("DB_HOST", "localhost"),
		DBPort:     getEnvOr("DB_PORT", "5432"),
		DBUser:     getEnvOr("DB_USER", "postgres"),
		DBPassword: readSecretOrEnv("DB_PASSWORD", "db_password"),
		DBName:     getEnvOr("DB_NAME", "mealplanner"),
		DBSSLMode:  getEnvOr("DB_SSL_MODE", "disable"),

		RedisHost:     getEnvOr("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOr("REDIS_PORT", "6379"),
		RedisPassword: readSecretOrEnv("REDIS_PASSWORD", "redis_password"),
		RedisDB:       getEnvIntOr("REDIS_DB", 0),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: readSecretOrEnv("JWT_SECRET", "jwt_secret"),

		OpenRouterAPIKey: readSecretOrEnv("OPENROUTER_API_KEY", "openrouter_api_key"),
		OpenRouterAPIURL: getEnvOr("OPENROUTER_API_URL", "https://openrouter.ai/api/v1"),
		OpenRouterModel:  getEnvOr("OPENROUTER_MODEL", "google/gemini-2.5-pro"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks that values without sensible defaults are present.
func ValidateConfig(cfg *Config) error {
	var missing []string

	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET is required")
	}
	if cfg.DBPassword == "" {
		missing = append(missing, "DB_PASSWORD is required")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%s", strings.Join(missing, "; "))
	}
	return nil
}

// readSecretOrEnv prefers the environment variable, then a Docker secret
// file of the given name under SECRETS_DIR.
func readSecretOrEnv(envVar, secretName string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnvOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOr(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
