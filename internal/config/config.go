package config

import (
	"os"
	"strconv"
	"strings"

	"statcalc/internal/errors"
	"statcalc/internal/report"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Inference InferenceConfig
	Data      DataConfig
	Batch     BatchConfig
	Profiling ProfilingConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	GinMode     string
	MaxUploadMB int
}

// InferenceConfig holds defaults applied when a request leaves a field empty
type InferenceConfig struct {
	DefaultConfidence float64 // percent, e.g. 95
	DefaultAlpha      float64
	ReportStyle       string
}

// DataConfig holds tabular input settings
type DataConfig struct {
	ExcelSheet string
}

// BatchConfig holds batch-interval settings
type BatchConfig struct {
	Workers int
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Inference: *loadInferenceConfig(),
		Data:      *loadDataConfig(),
		Batch:     *loadBatchConfig(),
		Profiling: *loadProfilingConfig(),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// MaxUploadBytes converts the upload limit to bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:        getEnvOrDefault("PORT", "8080"),
		GinMode:     getEnvOrDefault("GIN_MODE", "release"),
		MaxUploadMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 10),
	}
}

func loadInferenceConfig() *InferenceConfig {
	return &InferenceConfig{
		DefaultConfidence: getEnvFloatOrDefault("DEFAULT_CONFIDENCE", 95),
		DefaultAlpha:      getEnvFloatOrDefault("DEFAULT_ALPHA", 0.05),
		ReportStyle:       strings.ToLower(getEnvOrDefault("REPORT_STYLE", "plain")),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		ExcelSheet: getEnvOrDefault("EXCEL_SHEET", ""),
	}
}

func loadBatchConfig() *BatchConfig {
	return &BatchConfig{
		Workers: getEnvIntOrDefault("BATCH_WORKERS", 4),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if c := config.Inference.DefaultConfidence; !(c > 1 && c < 100) {
		return errors.ConfigInvalid("DEFAULT_CONFIDENCE must be a percentage above 1 and below 100 (e.g. 95)")
	}
	if a := config.Inference.DefaultAlpha; !(a > 0 && a < 1) {
		return errors.ConfigInvalid("DEFAULT_ALPHA must lie strictly between 0 and 1")
	}
	style, err := report.ParseStyle(config.Inference.ReportStyle)
	if err != nil {
		return errors.ConfigInvalid("REPORT_STYLE must be plain, decorated or markdown")
	}
	config.Inference.ReportStyle = string(style)
	if config.Batch.Workers < 1 {
		return errors.ConfigInvalid("BATCH_WORKERS must be at least 1")
	}
	if config.Server.MaxUploadMB < 1 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be at least 1")
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
