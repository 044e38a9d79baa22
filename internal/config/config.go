package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// app config: LLM provider, HTTP server and database settings
type Config struct {
	Provider string
	Port     string
	LogEnv   string

	Database DatabaseConfig

	ReaperSchedule string
	ReaperEnabled  bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider: getEnvOrDefault("AI_PROVIDER", "gemini"),
		Port:     getEnvOrDefault("PORT", "8080"),
		LogEnv:   getEnvOrDefault("LOG_ENV", "production"),
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			User:     getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Name:     getEnvOrDefault("POSTGRES_DB", "postgres"),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		},
		ReaperSchedule: getEnvOrDefault("SESSION_REAPER_SCHEDULE", "* * * * *"),
		ReaperEnabled:  getEnvBool("SESSION_REAPER_ENABLED", true),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	// Gemini validation is handled by gemini.NewConfig()
	if _, err := strconv.Atoi(config.Port); err != nil {
		return errors.New("PORT must be numeric: " + config.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
