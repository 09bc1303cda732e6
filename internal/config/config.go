package config

import (
	"os"
	"strconv"

	"abtest-analytics/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Bootstrap BootstrapConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port         string
	MaxBodyBytes int64
}

// DatabaseConfig holds the optional audit-log database connection.
// When URL is empty the audit log adapter no-ops; this is not the
// experiment-persistence the spec excludes, just operational telemetry.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// BootstrapConfig controls the percentile bootstrap used for continuous-metric
// confidence intervals.
type BootstrapConfig struct {
	Replicates      int
	Seed            int64
	SeedFromEntropy bool
	TotalRevenueCI  string // "closed_form" (default, matches spec.md) or "bootstrap"
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    loadServerConfig(),
		Database:  loadDatabaseConfig(),
		Bootstrap: loadBootstrapConfig(),
		Profiling: loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         getEnvOrDefault("PORT", "8080"),
		MaxBodyBytes: int64(getEnvIntOrDefault("MAX_BODY_BYTES", 10<<20)),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:     os.Getenv("DATABASE_URL"),
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}
}

func loadBootstrapConfig() BootstrapConfig {
	return BootstrapConfig{
		Replicates:      getEnvIntOrDefault("BOOTSTRAP_REPLICATES", 1000),
		Seed:            int64(getEnvIntOrDefault("BOOTSTRAP_SEED", 0)),
		SeedFromEntropy: getEnvBoolOrDefault("BOOTSTRAP_SEED_FROM_ENTROPY", true),
		TotalRevenueCI:  getEnvOrDefault("TOTAL_REVENUE_CI_METHOD", "closed_form"),
	}
}

func loadProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Bootstrap.Replicates <= 0 {
		return errors.ConfigInvalid("bootstrap replicate count must be positive")
	}
	if config.Bootstrap.TotalRevenueCI != "closed_form" && config.Bootstrap.TotalRevenueCI != "bootstrap" {
		return errors.ConfigInvalid("TOTAL_REVENUE_CI_METHOD must be closed_form or bootstrap")
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
