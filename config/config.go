package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port             string
	JWTSecret        string
	DBPath           string
	LogLevel         string
	DefaultListLimit int
	MaxListLimit     int
}

var (
	AppConfig Config
)

// LoadConfig reads .env (if present) and the process environment into AppConfig.
func LoadConfig() error {
	if err := loadEnvFile(".env"); err != nil {
		if !errors.Is(err, errEnvFileNotFound) {
			return err
		}
		log.Printf("Warning: .env file not found, using environment variables")
	}

	defaultLimit, err := getEnvInt("DEFAULT_LIST_LIMIT", 100)
	if err != nil {
		return err
	}
	maxLimit, err := getEnvInt("MAX_LIST_LIMIT", 1000)
	if err != nil {
		return err
	}
	if defaultLimit <= 0 || maxLimit <= 0 {
		return fmt.Errorf("list limits must be positive (default=%d, max=%d)", defaultLimit, maxLimit)
	}
	if defaultLimit > maxLimit {
		return fmt.Errorf("DEFAULT_LIST_LIMIT %d exceeds MAX_LIST_LIMIT %d", defaultLimit, maxLimit)
	}

	AppConfig = Config{
		Port:             getEnvOrDefault("PORT", "3000"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		DBPath:           getEnvOrDefault("DB_PATH", "worklogs.db"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		DefaultListLimit: defaultLimit,
		MaxListLimit:     maxLimit,
	}
	return nil
}

// RequireJWTSecret fails when the server is about to start without a signing key.
func (c Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("environment variable JWT_SECRET is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
