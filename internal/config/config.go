package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"modboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	API         APIConfig
	Server      ServerConfig
	Logging     LoggingConfig
	Preferences PreferencesConfig
	Export      ExportConfig
}

// APIConfig points at the upstream moderation REST API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	Token   string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	MetricsEnabled bool
}

// LoggingConfig selects verbosity and an optional rotating log file
type LoggingConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// PreferencesConfig locates the stored UI preferences
type PreferencesConfig struct {
	File string
}

// ExportConfig controls where CLI exports land
type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	apiConfig, err := loadAPIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load API configuration")
	}

	config := &Config{
		API:         *apiConfig,
		Server:      *loadServerConfig(),
		Logging:     *loadLoggingConfig(),
		Preferences: PreferencesConfig{File: getEnvOrDefault("PREFERENCES_FILE", "./modboard-preferences.yaml")},
		Export:      ExportConfig{Dir: getEnvOrDefault("EXPORT_DIR", ".")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAPIConfig() (*APIConfig, error) {
	baseURL := strings.TrimRight(os.Getenv("MODERATION_API_URL"), "/")
	if baseURL == "" {
		return nil, errors.ConfigInvalid("MODERATION_API_URL is required")
	}

	return &APIConfig{
		BaseURL: baseURL,
		Timeout: getEnvDurationOrDefault("MODERATION_API_TIMEOUT", 15*time.Second),
		Token:   getEnvOrDefault("MODERATION_API_TOKEN", ""),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		MetricsEnabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
	}
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:      getEnvOrDefault("LOG_LEVEL", "INFO"),
		File:       getEnvOrDefault("LOG_FILE", ""),
		MaxSizeMB:  getEnvIntOrDefault("LOG_MAX_SIZE_MB", 50),
		MaxBackups: getEnvIntOrDefault("LOG_MAX_BACKUPS", 3),
	}
}

func validateConfig(config *Config) error {
	u, err := url.Parse(config.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.ConfigInvalid("MODERATION_API_URL must be an absolute URL")
	}
	if config.API.Timeout <= 0 {
		return errors.ConfigInvalid("MODERATION_API_TIMEOUT must be positive")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
