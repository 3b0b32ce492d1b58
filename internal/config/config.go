// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Output formats understood by the render command.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Render() RenderConfig

	// Render Setters
	SetViewport(width, height int)
	SetOutput(path string)
	SetFormat(format string)
	SetConcurrency(n int)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	RenderCfg RenderConfig `mapstructure:"render" yaml:"render"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Render() RenderConfig { return c.RenderCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetViewport(width, height int) {
	c.RenderCfg.ViewportWidth = width
	c.RenderCfg.ViewportHeight = height
}
func (c *Config) SetOutput(path string)   { c.RenderCfg.Output = path }
func (c *Config) SetFormat(format string) { c.RenderCfg.Format = strings.ToLower(format) }
func (c *Config) SetConcurrency(n int)    { c.RenderCfg.Concurrency = n }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// RenderConfig holds the viewport and output settings of a render run.
type RenderConfig struct {
	ViewportWidth  int           `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int           `mapstructure:"viewport_height" yaml:"viewport_height"`
	Output         string        `mapstructure:"output" yaml:"output"`
	Format         string        `mapstructure:"format" yaml:"format"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// Concurrency bounds the number of documents rendered at once by batch runs.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static, so this only fails on a programming error.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "boxflow")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Render --
	v.SetDefault("render.viewport_width", 800)
	v.SetDefault("render.viewport_height", 600)
	v.SetDefault("render.output", "output.png")
	v.SetDefault("render.format", FormatPNG)
	v.SetDefault("render.timeout", "30s")
	v.SetDefault("render.concurrency", 4)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	v.BindEnv("logger.level", "BOXFLOW_LOG_LEVEL")
	v.BindEnv("render.output", "BOXFLOW_OUTPUT")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.RenderCfg.Format = strings.ToLower(cfg.RenderCfg.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LoggerCfg.Level); err != nil {
		return fmt.Errorf("logger.level %q is not a valid level", c.LoggerCfg.Level)
	}
	if err := c.RenderCfg.Validate(); err != nil {
		return fmt.Errorf("render configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the render settings.
func (r *RenderConfig) Validate() error {
	if r.ViewportWidth <= 0 || r.ViewportHeight <= 0 {
		return fmt.Errorf("viewport dimensions must be positive integers")
	}
	if r.Output == "" {
		return fmt.Errorf("output path is required")
	}
	switch r.Format {
	case FormatPNG, FormatSVG:
	default:
		return fmt.Errorf("unsupported output format %q", r.Format)
	}
	if r.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if r.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	return nil
}
