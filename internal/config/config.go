// Package config loads server settings from an optional TOML file and
// IMAGE_MCP_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// IMAGE_MCP_LOG_LEVEL=debug.
const EnvPrefix = "IMAGE_MCP"

const (
	DefaultLogLevel      = "info"
	DefaultOutputQuality = 90
	DefaultMaxInputBytes = 64 << 20

	// DefaultMaxOutputPixels allows an 8192 × 8192 result, 256 MiB as NRGBA.
	DefaultMaxOutputPixels = 8192 * 8192
)

// Config holds the server configuration.
type Config struct {
	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// OutputQuality is the encoder quality used by operations that do not
	// take one (crop, perspective crop, resize). Those always emit PNG.
	OutputQuality int `mapstructure:"output_quality"`

	// MaxInputBytes caps the decoded size of an incoming image.
	MaxInputBytes int `mapstructure:"max_input_bytes"`

	// MaxOutputPixels caps width × height of any grid an operation is asked
	// to produce (perspective crop, resize, optimize).
	MaxOutputPixels int `mapstructure:"max_output_pixels"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		OutputQuality:   DefaultOutputQuality,
		MaxInputBytes:   DefaultMaxInputBytes,
		MaxOutputPixels: DefaultMaxOutputPixels,
	}
}

// Load reads configuration. path may be empty, in which case only defaults
// and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("output_quality", def.OutputQuality)
	v.SetDefault("max_input_bytes", def.MaxInputBytes)
	v.SetDefault("max_output_pixels", def.MaxOutputPixels)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.OutputQuality < 1 || c.OutputQuality > 100 {
		return fmt.Errorf("output_quality must be between 1 and 100, got %d", c.OutputQuality)
	}
	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("max_input_bytes must be positive, got %d", c.MaxInputBytes)
	}
	if c.MaxOutputPixels <= 0 {
		return fmt.Errorf("max_output_pixels must be positive, got %d", c.MaxOutputPixels)
	}
	return nil
}

// Level parses LogLevel. An empty value means info.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
