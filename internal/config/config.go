package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port               int      `yaml:"port"`
	MetricsPort        int      `yaml:"metrics_port"`
	AdminToken         string   `yaml:"admin_token"`
	CORSOrigins        []string `yaml:"cors_origins"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
}

// DatabaseConfig selects the optional menu store. An empty URL for the
// postgres driver disables persistence.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// DatasetConfig points at the CSV loaded at startup when the store holds
// no dataset.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

type ScoringConfig struct {
	Workers int `yaml:"workers"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreEnabled reports whether a menu store should be opened.
func (c *Config) StoreEnabled() bool {
	return c.Database.Driver == "sqlite" || c.Database.URL != ""
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			CORSOrigins:        []string{"*"},
			RateLimitPerMinute: 120,
		},
		Database: DatabaseConfig{
			Driver: "postgres",
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Dataset: DatasetConfig{
			Path: "data/fastfood.csv",
		},
		Scoring: ScoringConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MENUSCORE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("MENUSCORE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("MENUSCORE_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("MENUSCORE_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("MENUSCORE_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("MENUSCORE_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("MENUSCORE_NATS_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("MENUSCORE_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("MENUSCORE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.Workers = n
		}
	}
	if v := os.Getenv("MENUSCORE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MENUSCORE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
