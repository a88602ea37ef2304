// Package config loads fitview settings from defaults, an optional YAML file
// and FITVIEW_* environment variables using viper.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/arloliu/fitview/chart"
	"github.com/arloliu/fitview/format"
	"github.com/arloliu/fitview/internal/logging"
)

// EnvPrefix is the prefix of environment overrides, e.g. FITVIEW_CHART_WIDTH.
const EnvPrefix = "FITVIEW"

// Config represents the complete fitview configuration
type Config struct {
	Chart   ChartConfig   `mapstructure:"chart"`
	Logging LoggingConfig `mapstructure:"logging"`
	Pack    PackConfig    `mapstructure:"pack"`
}

// ChartConfig controls rendered charts
type ChartConfig struct {
	// Width and Height are the outer chart size in points.
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	// Colors maps a series name to a hex color.
	Colors map[string]string `mapstructure:"colors"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is "json" or "text".
	Format string `mapstructure:"format"`
}

// PackConfig controls dataset snapshots
type PackConfig struct {
	// Compression is the default payload codec: none, zstd, s2 or lz4.
	Compression string `mapstructure:"compression"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			Width:  chart.DefaultWidth,
			Height: chart.DefaultHeight,
			Colors: chart.DefaultPalette(),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: logging.FormatText,
		},
		Pack: PackConfig{
			Compression: "zstd",
		},
	}
}

// Palette returns the configured series colors.
func (c *Config) Palette() chart.Palette {
	return chart.Palette(maps.Clone(c.Chart.Colors))
}

// Compression returns the parsed pack compression.
func (c *Config) Compression() (format.CompressionType, error) {
	return format.ParseCompression(c.Pack.Compression)
}

// SetDefaults registers every default value on v so that keys resolve even
// without a config file.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("chart.width", defaults.Chart.Width)
	v.SetDefault("chart.height", defaults.Chart.Height)
	for series, color := range defaults.Chart.Colors {
		v.SetDefault("chart.colors."+series, color)
	}

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetDefault("pack.compression", defaults.Pack.Compression)
}

// New returns a viper instance with defaults, environment overrides and the
// config file applied.
//
// An explicit cfgFile must exist. Without one, config.yaml is looked up in
// ConfigDir() and the working directory, and a missing file is not an error.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	// chart.width is overridden by FITVIEW_CHART_WIDTH
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fitview")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".fitview"
	}

	return filepath.Join(home, ".config", "fitview")
}
