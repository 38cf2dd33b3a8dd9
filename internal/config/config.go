package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/money-ledger/money/internal/logging"
)

// FileName is the config file money looks for in the working directory.
const FileName = "money.yaml"

// Config represents the top-level money.yaml configuration.
type Config struct {
	Database string         `yaml:"database" env:"MONEY_DATABASE" env-default:"ledger.json"`
	Report   ReportConfig   `yaml:"report"`
	Session  SessionConfig  `yaml:"session"`
	Log      logging.Config `yaml:"log"`
}

// ReportConfig locates the expense report service.
type ReportConfig struct {
	Address string        `yaml:"address" env:"MONEY_REPORT_ADDRESS" env-default:"tcp://localhost:5555"`
	Timeout time.Duration `yaml:"timeout" env:"MONEY_REPORT_TIMEOUT" env-default:"30s"`
}

// SessionConfig controls the interactive session loop.
type SessionConfig struct {
	TickRate time.Duration `yaml:"tick_rate" env:"MONEY_TICK_RATE" env-default:"250ms"`
}

// Load reads a money.yaml file from disk. Values the file leaves out keep
// their zero value; see Resolve.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(database string) *Config {
	return &Config{
		Database: database,
		Report: ReportConfig{
			Address: "tcp://localhost:5555",
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{
			TickRate: 250 * time.Millisecond,
		},
		Log: logging.Config{
			Format: "console",
			Level:  "warn",
			Output: "stderr",
		},
	}
}

// Resolve loads path if it exists, then a .env file next to it, then
// applies MONEY_* environment overrides and fills remaining gaps with
// defaults. A missing config file is not an error.
func Resolve(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}

	dotEnv := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", dotEnv, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}
