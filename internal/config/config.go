// Package config handles loading and parsing application configuration.
// The config file is located by (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Values in the file can be overridden by environment variables, which may
// themselves come from a .env file in the working directory.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure. Every field maps to a key in
// the YAML file and can be overridden by the env variable named in its tag.
type Config struct {
	// Env controls log format and default verbosity: dev, staging or prod.
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// LogLevel overrides the env's default level: debug, info, warn or error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	HTTPServer `yaml:"http_server"`
	Storage    Storage `yaml:"storage"`
	Metrics    Metrics `yaml:"metrics"`
	Docs       Docs    `yaml:"docs"`
}

// HTTPServer holds settings of the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr            string        `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Storage selects the record store backend.
type Storage struct {
	// Driver is memory or sqlite.
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`

	// Path is the sqlite DSN; empty keeps the database in memory.
	Path string `yaml:"path" env:"STORAGE_PATH"`
}

// Metrics controls the Prometheus endpoint.
//
// The toggles carry no env-default: cleanenv applies defaults to zero
// values, which would turn an explicit "enabled: false" back on.
type Metrics struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path" env:"METRICS_PATH" env-default:"/metrics"`
}

// Docs controls the OpenAPI endpoints.
type Docs struct {
	Enabled bool `yaml:"enabled" env:"DOCS_ENABLED"`
}

// Load reads the YAML file at path, applies env overrides and validates
// the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the application cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Env {
	case "dev", "staging", "prod":
	default:
		errs = append(errs, fmt.Errorf("env must be dev, staging or prod, got %q", c.Env))
	}
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be %s or %s, got %q", DriverMemory, DriverSQLite, c.Storage.Driver))
	}
	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.Path[0] != '/') {
		errs = append(errs, fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path))
	}
	return errors.Join(errs...)
}

// MustLoad resolves the config path, loads the config and exits the
// process on any failure. If it returns, the config is valid.
func MustLoad() *Config {
	// A missing .env file is fine; only real env vars are needed then.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
