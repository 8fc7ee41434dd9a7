package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configFileName = "ddb.yaml"

// Config holds the settings shared by all commands.
//
// Values are resolved in order, later sources winning: built-in defaults,
// ddb.yaml (searched from the current directory upwards), DDB_* environment
// variables (a .env file in the current directory is loaded first), flags.
type Config struct {
	// Schema is a glob pattern for table schema files.
	Schema string `yaml:"schema"`

	// Addr is the listen address for ddb serve.
	Addr string `yaml:"addr"`

	// Endpoint, if set, makes ddb exec send requests to a DynamoDB endpoint
	// instead of an in-memory store.
	Endpoint string `yaml:"endpoint"`

	// Region is the AWS region used with Endpoint.
	Region string `yaml:"region"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

func defaultConfig() Config {
	return Config{
		Schema:   "ddb.tables.yaml",
		Addr:     ":8000",
		Region:   "us-east-1",
		LogLevel: "info",
	}
}

// LoadConfig resolves the configuration from every source except flags.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := findConfigFile(); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}
	applyEnv(&cfg, os.Getenv)
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	for name, dst := range map[string]*string{
		"DDB_SCHEMA":    &cfg.Schema,
		"DDB_ADDR":      &cfg.Addr,
		"DDB_ENDPOINT":  &cfg.Endpoint,
		"DDB_REGION":    &cfg.Region,
		"DDB_LOG_LEVEL": &cfg.LogLevel,
	} {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}
}

// findConfigFile searches for ddb.yaml walking up from current directory.
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFileFrom(dir)
}

func findConfigFileFrom(dir string) string {
	for {
		path := filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
