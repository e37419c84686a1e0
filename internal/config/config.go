// Package config loads the ddldoc YAML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Document Document `yaml:"document"`
	Parser   Parser   `yaml:"parser"`
	Logging  Logging  `yaml:"logging"`
}

// Document controls the layout of rendered schema documents.
type Document struct {
	Title            string   `yaml:"title"`
	Locale           string   `yaml:"locale"` // "en" or "zh"
	Heading          bool     `yaml:"heading"`
	HeadingLevel     int      `yaml:"heading_level"`
	Description      bool     `yaml:"description"`
	Caption          bool     `yaml:"caption"`
	Chapter          int      `yaml:"chapter"`
	StartTable       int      `yaml:"start_table"`
	AttributeSummary int      `yaml:"attribute_summary"`
	BlankSeparator   bool     `yaml:"blank_separator"`
	TableStyle       string   `yaml:"table_style"` // "three_line" or "grid"
	ColumnLabels     []string `yaml:"column_labels"`
}

// Parser holds limits applied before and during parsing.
type Parser struct {
	MaxInputBytes int64 `yaml:"max_input_bytes"`
	Workers       int   `yaml:"workers"`
}

// Logging configures the zap logger and its optional rotating file.
type Logging struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

var validLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validLocales = map[string]bool{"en": true, "zh": true}

var validTableStyles = map[string]bool{"three_line": true, "grid": true}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Document: Document{
			Title:            "Database Schema",
			Locale:           "en",
			Heading:          true,
			HeadingLevel:     2,
			Description:      true,
			Caption:          true,
			Chapter:          1,
			StartTable:       1,
			AttributeSummary: 3,
			TableStyle:       "three_line",
		},
		Logging: Logging{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads path and overlays it on Default. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values no renderer or logger can honour.
func (c Config) Validate() error {
	d := c.Document
	if d.HeadingLevel < 1 || d.HeadingLevel > 6 {
		return fmt.Errorf("document.heading_level must be between 1 and 6, got %d", d.HeadingLevel)
	}
	if d.Chapter < 0 || d.StartTable < 0 || d.AttributeSummary < 0 {
		return fmt.Errorf("document numbering values must not be negative")
	}
	if !validLocales[d.Locale] {
		return fmt.Errorf("unknown document.locale %q (want en or zh)", d.Locale)
	}
	if !validTableStyles[d.TableStyle] {
		return fmt.Errorf("unknown document.table_style %q (want three_line or grid)", d.TableStyle)
	}
	if n := len(d.ColumnLabels); n != 0 && n != 4 {
		return fmt.Errorf("document.column_labels needs 4 entries, got %d", n)
	}

	if c.Parser.MaxInputBytes < 0 {
		return fmt.Errorf("parser.max_input_bytes must not be negative")
	}
	if c.Parser.Workers < 0 {
		return fmt.Errorf("parser.workers must not be negative")
	}

	l := c.Logging
	if !validLevels[strings.ToLower(l.Level)] {
		return fmt.Errorf("unknown logging.level %q", l.Level)
	}
	if l.MaxSizeMB < 0 || l.MaxBackups < 0 || l.MaxAgeDays < 0 {
		return fmt.Errorf("logging rotation values must not be negative")
	}
	return nil
}
