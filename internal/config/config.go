package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"codetidbit/internal/models"
)

// Config holds all application configuration. Built once in main and passed
// down explicitly; nothing reads the environment after startup.
type Config struct {
	Port        string
	MongoURI    string
	Environment string

	// Session auth
	JWTSecret     string
	SessionExpiry time.Duration

	// Known-language table seed file (hot-reloaded via fsnotify)
	LanguagesFile string

	// Notification housekeeping
	NotificationMaxAge        time.Duration // read notifications older than this are deleted
	NotificationCleanupPeriod time.Duration
}

// Load loads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3001"),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017/codetidbit"),
		Environment: getEnv("ENVIRONMENT", "development"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		SessionExpiry: getDurationEnv("SESSION_EXPIRY", 7*24*time.Hour),

		LanguagesFile: getEnv("LANGUAGES_FILE", "languages.json"),

		NotificationMaxAge:        getDurationEnv("NOTIFICATION_MAX_AGE", 30*24*time.Hour),
		NotificationCleanupPeriod: getDurationEnv("NOTIFICATION_CLEANUP_PERIOD", 6*time.Hour),
	}
}

// LoadLanguages loads the known-language table from a JSON file.
func LoadLanguages(filePath string) (*models.LanguagesConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read languages file: %w", err)
	}

	var config models.LanguagesConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse languages JSON: %w", err)
	}

	return &config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
