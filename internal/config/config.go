package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the doodle recognition server.
type Config struct {
	Server     ServerConfig
	Model      ModelConfig
	Preprocess PreprocessConfig
	CORS       CORSConfig
	Log        LogConfig
}

// ServerConfig holds HTTP listener configuration.
type ServerConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8000"`
	Mode            string        `env:"GIN_MODE" envDefault:"release"`
	MaxUploadBytes  int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// ModelConfig holds model artifact locations.
type ModelConfig struct {
	Path         string `env:"MODEL_PATH" envDefault:"models/doodle.onnx"`
	MetadataPath string `env:"MODEL_METADATA_PATH" envDefault:"models/model_metadata.json"`
	LabelsPath   string `env:"LABELS_PATH"`
	// Empty means the ONNX Runtime default library lookup.
	LibraryPath string `env:"ONNX_LIBRARY_PATH"`
	TopK        int    `env:"TOP_K" envDefault:"5"`
}

// PreprocessConfig holds image preprocessing options.
type PreprocessConfig struct {
	Invert bool `env:"PREPROCESS_INVERT" envDefault:"false"`
}

// CORSConfig holds the origin allow-list.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"json"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("max upload bytes must be positive")
	}

	validModes := map[string]bool{
		"debug":   true,
		"release": true,
		"test":    true,
	}
	if !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid gin mode: %s (must be debug, release, or test)", c.Server.Mode)
	}

	if c.Model.Path == "" {
		return fmt.Errorf("model path is required")
	}
	if c.Model.TopK < 1 {
		return fmt.Errorf("top k must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Log.Format)
	}

	return nil
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
