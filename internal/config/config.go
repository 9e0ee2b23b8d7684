package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"hypoplan/internal/errors"
)

// Planner and SQL backends.
const (
	PlannerModeRules = "rules"
	PlannerModeLLM   = "llm"

	SQLModeHeuristic = "heuristic"
	SQLModeLLM       = "llm"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Planner  PlannerConfig
	LLM      LLMConfig
	SQL      SQLConfig
	Database DatabaseConfig
	Metrics  MetricsConfig
	LogLevel string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// PlannerConfig selects the plan composer once at startup
type PlannerConfig struct {
	Mode string
}

// LLMConfig holds settings shared by every model-backed component
type LLMConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	Temperature    float64
	MaxTokens      int
	Timeout        time.Duration
	MaxConcurrency int
}

// SQLConfig holds SQL generation settings
type SQLConfig struct {
	Mode      string
	CacheSize int
}

// DatabaseConfig holds the optional connection used for schema introspection
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether a database was configured.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// NeedsLLM reports whether any component was configured to call a model.
func (c *Config) NeedsLLM() bool {
	return c.Planner.Mode == PlannerModeLLM || c.SQL.Mode == SQLModeLLM
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Planner:  *loadPlannerConfig(),
		LLM:      *loadLLMConfig(),
		SQL:      *loadSQLConfig(),
		Database: DatabaseConfig{URL: getEnvOrDefault("DATABASE_URL", "")},
		Metrics:  *loadMetricsConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadPlannerConfig() *PlannerConfig {
	return &PlannerConfig{
		Mode: strings.ToLower(getEnvOrDefault("PLANNER_MODE", PlannerModeRules)),
	}
}

func loadLLMConfig() *LLMConfig {
	return &LLMConfig{
		APIKey:         os.Getenv("LLM_API_KEY"),
		Model:          getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		BaseURL:        getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
		Temperature:    getEnvFloatOrDefault("LLM_TEMPERATURE", 0.2),
		MaxTokens:      getEnvIntOrDefault("LLM_MAX_TOKENS", 400),
		Timeout:        getEnvDurationOrDefault("LLM_TIMEOUT", 30*time.Second),
		MaxConcurrency: getEnvIntOrDefault("LLM_MAX_CONCURRENCY", 4),
	}
}

func loadSQLConfig() *SQLConfig {
	return &SQLConfig{
		Mode:      strings.ToLower(getEnvOrDefault("SQL_MODE", SQLModeHeuristic)),
		CacheSize: getEnvIntOrDefault("SQL_CACHE_SIZE", 256),
	}
}

func loadMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		Enabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
		Path:    getEnvOrDefault("METRICS_PATH", "/metrics"),
	}
}

func validateConfig(config *Config) error {
	switch config.Planner.Mode {
	case PlannerModeRules, PlannerModeLLM:
	default:
		return errors.ConfigInvalid("PLANNER_MODE must be rules or llm")
	}
	switch config.SQL.Mode {
	case SQLModeHeuristic, SQLModeLLM:
	default:
		return errors.ConfigInvalid("SQL_MODE must be heuristic or llm")
	}
	if config.NeedsLLM() && config.LLM.APIKey == "" {
		return errors.ConfigInvalid("LLM_API_KEY is required when an llm mode is selected")
	}
	if config.LLM.MaxConcurrency <= 0 {
		return errors.ConfigInvalid("LLM_MAX_CONCURRENCY must be positive")
	}
	if config.SQL.CacheSize <= 0 {
		return errors.ConfigInvalid("SQL_CACHE_SIZE must be positive")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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
