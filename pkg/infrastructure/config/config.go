package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/backoffice/pkg/domain/services/shelflife"
)

// TableConfig holds table screen configuration
type TableConfig struct {
	PageSize   int      `yaml:"page_size"`
	Searchable []string `yaml:"searchable"`
}

// ChipsConfig holds flag chip row configuration, in terminal cells
type ChipsConfig struct {
	Width   float64 `yaml:"width"`
	Gap     float64 `yaml:"gap"`
	Padding int     `yaml:"padding"`
}

// CacheConfig holds the shelf-life classification cache configuration
type CacheConfig struct {
	Size int `yaml:"size"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config represents the complete back office configuration
type Config struct {
	Locale    string           `yaml:"locale"`
	ShelfLife shelflife.Config `yaml:"shelf_life"`
	Table     TableConfig      `yaml:"table"`
	Chips     ChipsConfig      `yaml:"chips"`
	Cache     CacheConfig      `yaml:"cache"`
	Metrics   MetricsConfig    `yaml:"metrics"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// Load loads configuration from a file. An empty path yields Default().
func Load(filePath string) (*Config, error) {
	if filePath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, applies defaults and validates it
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default values for unspecified configuration
func setDefaults(cfg *Config) {
	if cfg.Locale == "" {
		cfg.Locale = "ru"
	}

	defaults := shelflife.DefaultConfig()
	if cfg.ShelfLife.WarningProgress == 0 {
		cfg.ShelfLife.WarningProgress = defaults.WarningProgress
	}
	if cfg.ShelfLife.FallbackDays == 0 {
		cfg.ShelfLife.FallbackDays = defaults.FallbackDays
	}

	if cfg.Table.PageSize == 0 {
		cfg.Table.PageSize = 10
	}
	if len(cfg.Table.Searchable) == 0 {
		cfg.Table.Searchable = []string{"name", "category", "supplier", "location", "flags"}
	}

	if cfg.Chips.Width == 0 {
		cfg.Chips.Width = 24
	}
	if cfg.Chips.Gap == 0 {
		cfg.Chips.Gap = 1
	}
	if cfg.Chips.Padding == 0 {
		cfg.Chips.Padding = 1
	}

	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = 1024
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("locale %q: %w", c.Locale, err))
	}
	if err := c.ShelfLife.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Table.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("table.page_size must be positive, got %d", c.Table.PageSize))
	}
	if c.Chips.Width < 0 {
		errs = append(errs, fmt.Errorf("chips.width cannot be negative, got %v", c.Chips.Width))
	}
	if c.Chips.Gap < 0 {
		errs = append(errs, fmt.Errorf("chips.gap cannot be negative, got %v", c.Chips.Gap))
	}
	if c.Cache.Size <= 0 {
		errs = append(errs, fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// LocaleTag returns the parsed locale, falling back to Russian
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Russian
	}
	return tag
}
