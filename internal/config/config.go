// Package config loads the application configuration from an
// optional YAML file overlaid with SALESPIPE_-prefixed environment
// variables, resolves filesystem paths and validates the result.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix scopes the environment variables read by Load.
const envPrefix = "SALESPIPE"

// Config represents the complete application configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Reporting ReportingConfig `yaml:"reporting" envconfig:"REPORTING"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains the input and output locations. The three
// source files live under DataDir; cleaned tables and the fact table
// are written to OutputDir, aggregates to its aggregates subdir.
type PathsConfig struct {
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	OutputDir     string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	CustomersFile string `yaml:"customers_file" envconfig:"CUSTOMERS_FILE" validate:"required"`
	OrdersFile    string `yaml:"orders_file" envconfig:"ORDERS_FILE" validate:"required"`
	PaymentsFile  string `yaml:"payments_file" envconfig:"PAYMENTS_FILE" validate:"required"`
}

// ServerConfig contains the reporting API server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// ReportingConfig configures the optional SQL analysis sink. The sink
// is skipped entirely when DSN is empty.
type ReportingConfig struct {
	DSN          string        `yaml:"dsn" envconfig:"DSN"`
	QueryTimeout time.Duration `yaml:"query_timeout" envconfig:"QUERY_TIMEOUT"`
	TopCustomers int           `yaml:"top_customers" envconfig:"TOP_CUSTOMERS" validate:"min=1"`
}

// Load reads the YAML config file (if present), overlays environment
// variables, applies defaults and validates.
func Load() (*Config, error) {
	return LoadFrom(configFilePath())
}

// LoadFrom is Load with an explicit config file path, used by tests.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Environment variables override file values.
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills every zero value with its default so file, env
// and defaults layer predictably.
func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/salespipe.log"
	}
	if c.Paths.DataDir == "" {
		c.Paths.DataDir = "data"
	}
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = "outputs"
	}
	if c.Paths.CustomersFile == "" {
		c.Paths.CustomersFile = "customers.csv"
	}
	if c.Paths.OrdersFile == "" {
		c.Paths.OrdersFile = "orders.json"
	}
	if c.Paths.PaymentsFile == "" {
		c.Paths.PaymentsFile = "payments.xlsx"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Reporting.QueryTimeout == 0 {
		c.Reporting.QueryTimeout = 30 * time.Second
	}
	if c.Reporting.TopCustomers == 0 {
		c.Reporting.TopCustomers = 10
	}
}

// CustomersPath returns the absolute-ish path to the customers CSV.
func (c *Config) CustomersPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.CustomersFile)
}

// OrdersPath returns the path to the orders JSON.
func (c *Config) OrdersPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.OrdersFile)
}

// PaymentsPath returns the path to the payments workbook.
func (c *Config) PaymentsPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.PaymentsFile)
}

// AggregatesDir returns the directory aggregate tables are written to.
func (c *Config) AggregatesDir() string {
	return filepath.Join(c.Paths.OutputDir, "aggregates")
}

// configFilePath returns the config file location, overridable via
// SALESPIPE_CONFIG.
func configFilePath() string {
	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		return path
	}
	return "salespipe.yaml"
}
