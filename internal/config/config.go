package config

import (
	"os"
	"strconv"
	"time"

	"heartrisk/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Ops    OpsConfig
	Model  ModelConfig
	Delays DelayConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// OpsConfig holds settings for the operational endpoints server
type OpsConfig struct {
	Port    string
	Enabled bool
}

// ModelConfig holds model artifact settings
type ModelConfig struct {
	Path string
}

// DelayConfig holds the presentational delays applied around prediction
// and report assembly. They are cosmetic and may be set to zero.
type DelayConfig struct {
	Analysis time.Duration
	Report   time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: loadServerConfig(),
		Ops:    loadOpsConfig(),
		Model:  loadModelConfig(),
		Delays: loadDelayConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadOpsConfig() OpsConfig {
	return OpsConfig{
		Port:    getEnvOrDefault("OPS_PORT", "8081"),
		Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
	}
}

func loadModelConfig() ModelConfig {
	return ModelConfig{
		Path: getEnvOrDefault("MODEL_PATH", "model_random.json"),
	}
}

func loadDelayConfig() DelayConfig {
	return DelayConfig{
		Analysis: time.Duration(getEnvIntOrDefault("ANALYSIS_DELAY_MS", 2000)) * time.Millisecond,
		Report:   time.Duration(getEnvIntOrDefault("REPORT_DELAY_MS", 2000)) * time.Millisecond,
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Model.Path == "" {
		return errors.ConfigInvalid("model artifact path is required")
	}
	if config.Delays.Analysis < 0 || config.Delays.Report < 0 {
		return errors.ConfigInvalid("delays must not be negative")
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
