// File: internal/config/config_test.go
package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger().Level)
	assert.Equal(t, "console", cfg.Logger().Format)
	assert.Equal(t, 800, cfg.Render().ViewportWidth)
	assert.Equal(t, 600, cfg.Render().ViewportHeight)
	assert.Equal(t, "output.png", cfg.Render().Output)
	assert.Equal(t, FormatPNG, cfg.Render().Format)
	assert.Equal(t, 30*time.Second, cfg.Render().Timeout)
	assert.Equal(t, 4, cfg.Render().Concurrency)
	assert.NoError(t, cfg.Validate())
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"Zero Width", func(c *Config) { c.SetViewport(0, 600) }, "viewport dimensions must be positive integers"},
		{"Negative Height", func(c *Config) { c.SetViewport(800, -1) }, "viewport dimensions must be positive integers"},
		{"Missing Output", func(c *Config) { c.SetOutput("") }, "output path is required"},
		{"Unknown Format", func(c *Config) { c.SetFormat("gif") }, `unsupported output format "gif"`},
		{"Bad Level", func(c *Config) { c.LoggerCfg.Level = "loud" }, "logger.level"},
		{"Negative Timeout", func(c *Config) { c.RenderCfg.Timeout = -time.Second }, "timeout must not be negative"},
		{"Negative Concurrency", func(c *Config) { c.SetConcurrency(-2) }, "concurrency must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("Format Is Case Insensitive", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.SetFormat("SVG")
		assert.Equal(t, FormatSVG, cfg.Render().Format)
		assert.NoError(t, cfg.Validate())
	})
}

// -- Factory Function Tests --

func TestNewConfigFromViper(t *testing.T) {
	t.Run("Successful Load from YAML", func(t *testing.T) {
		yamlBytes := []byte(`
logger:
  level: debug
  log_file: /var/log/boxflow.log
render:
  viewport_width: 1024
  format: SVG
  timeout: 5s
`)
		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(bytes.NewBuffer(yamlBytes)))

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Logger().Level)
		assert.Equal(t, "/var/log/boxflow.log", cfg.Logger().LogFile)
		assert.Equal(t, 1024, cfg.Render().ViewportWidth)
		assert.Equal(t, 600, cfg.Render().ViewportHeight, "defaults fill in missing keys")
		assert.Equal(t, FormatSVG, cfg.Render().Format)
		assert.Equal(t, 5*time.Second, cfg.Render().Timeout)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("render.viewport_width", 0)

		cfg, err := NewConfigFromViper(v)
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("Environment Variable Binding", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)

		yamlConfig := []byte(`
render:
  output: from-file.png
`)
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(bytes.NewBuffer(yamlConfig)))

		t.Setenv("BOXFLOW_OUTPUT", "from-env.png")
		t.Setenv("BOXFLOW_LOG_LEVEL", "warn")

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.Equal(t, "from-env.png", cfg.Render().Output)
		assert.Equal(t, "warn", cfg.Logger().Level)
	})
}
