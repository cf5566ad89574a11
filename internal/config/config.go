//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-shopstats.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DateLayout is the layout of every date in configuration files.
const DateLayout = "2006-01-02"

// MinProducts is the smallest catalogue that gives every subcategory at
// least one product.
const MinProducts = 25

// Config holds all configuration for pgedge-shopstats.
type Config struct {
	// Connection is the database connection string.
	Connection string `mapstructure:"connection"`

	// Driver selects the database backend (postgres, mysql).
	Driver string `mapstructure:"driver"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is console or json.
	LogFormat string `mapstructure:"log_format"`

	// OutputDir is where CSV files, charts and the run manifest go.
	OutputDir string `mapstructure:"output_dir"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Analyze holds configuration for the analyze subcommand.
	Analyze AnalyzeConfig `mapstructure:"analyze"`
}

// GenerateConfig holds configuration for synthetic dataset generation.
type GenerateConfig struct {
	// StartDate and EndDate bound the order dates (inclusive, YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	// Products is the catalogue size. It is split evenly over the
	// subcategories, so it should be a multiple of 25.
	Products int `mapstructure:"products"`

	// Customers is the number of customers.
	Customers int `mapstructure:"customers"`

	// Transactions is the number of sales rows.
	Transactions int `mapstructure:"transactions"`

	// Seed makes generation reproducible. Zero uses the current time.
	Seed uint64 `mapstructure:"seed"`

	// Profile is the demand profile used to weight order dates.
	Profile string `mapstructure:"profile"`

	// Progress shows a terminal progress bar while generating sales.
	Progress bool `mapstructure:"progress"`

	// Load also loads the generated dataset into the database.
	Load bool `mapstructure:"load"`

	// DropExisting drops existing tables before loading.
	DropExisting bool `mapstructure:"drop_existing"`
}

// AnalyzeConfig holds configuration for the analysis run.
type AnalyzeConfig struct {
	// ReferenceDate is the date recency is measured from. Empty means the
	// dataset end date recorded at load time, or today if none was saved.
	ReferenceDate string `mapstructure:"reference_date"`

	// Charts enables PNG chart rendering.
	Charts bool `mapstructure:"charts"`

	// ChartWidth and ChartHeight are the chart size in pixels.
	ChartWidth  int `mapstructure:"chart_width"`
	ChartHeight int `mapstructure:"chart_height"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Driver:    "postgres",
		LogLevel:  "info",
		LogFormat: "console",
		OutputDir: "output",
		Generate: GenerateConfig{
			StartDate:    "2024-01-01",
			EndDate:      "2024-12-31",
			Products:     100,
			Customers:    1000,
			Transactions: 10000,
			Profile:      "calendar",
			Progress:     true,
		},
		Analyze: AnalyzeConfig{
			Charts:      true,
			ChartWidth:  1200,
			ChartHeight: 600,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-shopstats.yaml
// 3. ~/.config/pgedge-shopstats/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-shopstats")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-shopstats"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ValidateDatabase checks the settings every database command needs.
func (c *Config) ValidateDatabase() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.Driver != "postgres" && c.Driver != "mysql" {
		return fmt.Errorf("driver must be 'postgres' or 'mysql'")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	start, end, err := c.Generate.Dates()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end_date must not be before start_date")
	}
	if c.Generate.Products < MinProducts {
		return fmt.Errorf("products must be at least %d", MinProducts)
	}
	if c.Generate.Customers < 1 {
		return fmt.Errorf("customers must be at least 1")
	}
	if c.Generate.Transactions < 1 {
		return fmt.Errorf("transactions must be at least 1")
	}
	if c.Generate.Profile == "" {
		return fmt.Errorf("demand profile is required")
	}
	if c.Generate.Load {
		return c.ValidateDatabase()
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return c.ValidateDatabase()
}

// ValidateAnalyze checks configuration required for the analyze command.
func (c *Config) ValidateAnalyze() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.Analyze.ReferenceDate != "" {
		if _, err := time.Parse(DateLayout, c.Analyze.ReferenceDate); err != nil {
			return fmt.Errorf("invalid reference_date: %w", err)
		}
	}
	if c.Analyze.Charts && (c.Analyze.ChartWidth < 100 || c.Analyze.ChartHeight < 100) {
		return fmt.Errorf("chart_width and chart_height must be at least 100")
	}
	return nil
}

// Dates parses StartDate and EndDate.
func (g GenerateConfig) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, g.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse(DateLayout, g.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", err)
	}
	return start, end, nil
}
