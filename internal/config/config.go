package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Report  ReportConfig  `yaml:"report"`
	Events  EventsConfig  `yaml:"events"`
	Scoring ScoringConfig `yaml:"scoring"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

type CatalogConfig struct {
	ItemsPath      string `yaml:"items_path"`
	IndicatorsPath string `yaml:"indicators_path"`
}

type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

type EventsConfig struct {
	// URL of the NATS server; empty disables event publishing.
	URL string `yaml:"url"`
}

type ScoringConfig struct {
	GeneralWeight      float64 `yaml:"general_weight"`
	SpecificWeight     float64 `yaml:"specific_weight"`
	YesValue           float64 `yaml:"yes_value"`
	NoValue            float64 `yaml:"no_value"`
	IndeterminateValue float64 `yaml:"indeterminate_value"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8080,
			MetricsPort: 8081,
		},
		Catalog: CatalogConfig{
			ItemsPath:      "data/catalog_items.json",
			IndicatorsPath: "data/specific_indicators.json",
		},
		Report: ReportConfig{
			OutputDir: "reports",
		},
		Scoring: ScoringConfig{
			GeneralWeight:      0.75,
			SpecificWeight:     0.25,
			YesValue:           100,
			NoValue:            0,
			IndeterminateValue: 25,
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
	if v := os.Getenv("AUTOEVAL_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("AUTOEVAL_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("AUTOEVAL_CATALOG_ITEMS"); v != "" {
		cfg.Catalog.ItemsPath = v
	}
	if v := os.Getenv("AUTOEVAL_CATALOG_INDICATORS"); v != "" {
		cfg.Catalog.IndicatorsPath = v
	}
	if v := os.Getenv("AUTOEVAL_REPORT_DIR"); v != "" {
		cfg.Report.OutputDir = v
	}
	if v := os.Getenv("AUTOEVAL_NATS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("AUTOEVAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
