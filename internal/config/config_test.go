package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default configuration", func(t *testing.T) {
		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8000, cfg.Server.Port)
		assert.Equal(t, "release", cfg.Server.Mode)
		assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
		assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

		assert.Equal(t, "models/doodle.onnx", cfg.Model.Path)
		assert.Equal(t, "models/model_metadata.json", cfg.Model.MetadataPath)
		assert.Empty(t, cfg.Model.LabelsPath)
		assert.Equal(t, 5, cfg.Model.TopK)

		assert.False(t, cfg.Preprocess.Invert)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)

		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Empty(t, cfg.Log.File)
	})

	t.Run("reads from environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("MODEL_PATH", "/srv/models/sketch.onnx")
		t.Setenv("PREPROCESS_INVERT", "true")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://doodle.example.com")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "/srv/models/sketch.onnx", cfg.Model.Path)
		assert.True(t, cfg.Preprocess.Invert)
		assert.Equal(t, []string{"http://localhost:3000", "https://doodle.example.com"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Setenv("TOP_K", "0")

		_, err := Load()

		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown gin mode", func(c *Config) { c.Server.Mode = "prod" }},
		{"empty model path", func(c *Config) { c.Model.Path = "" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"non-positive upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
