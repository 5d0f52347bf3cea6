package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	envVars := []string{
		"AUTOEVAL_PORT", "AUTOEVAL_METRICS_PORT", "AUTOEVAL_CATALOG_ITEMS",
		"AUTOEVAL_CATALOG_INDICATORS", "AUTOEVAL_REPORT_DIR",
		"AUTOEVAL_NATS_URL", "AUTOEVAL_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8081 {
		t.Errorf("expected metrics port 8081, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Catalog.ItemsPath != "data/catalog_items.json" {
		t.Errorf("unexpected items path %q", cfg.Catalog.ItemsPath)
	}
	if cfg.Catalog.IndicatorsPath != "data/specific_indicators.json" {
		t.Errorf("unexpected indicators path %q", cfg.Catalog.IndicatorsPath)
	}
	if cfg.Report.OutputDir != "reports" {
		t.Errorf("unexpected report dir %q", cfg.Report.OutputDir)
	}
	if cfg.Events.URL != "" {
		t.Errorf("expected events disabled by default, got %q", cfg.Events.URL)
	}
	if cfg.Scoring.GeneralWeight != 0.75 || cfg.Scoring.SpecificWeight != 0.25 {
		t.Errorf("unexpected blend weights %f/%f", cfg.Scoring.GeneralWeight, cfg.Scoring.SpecificWeight)
	}
	if cfg.Scoring.YesValue != 100 || cfg.Scoring.NoValue != 0 || cfg.Scoring.IndeterminateValue != 25 {
		t.Errorf("unexpected answer values %+v", cfg.Scoring)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUTOEVAL_PORT", "9000")
	t.Setenv("AUTOEVAL_METRICS_PORT", "9001")
	t.Setenv("AUTOEVAL_CATALOG_ITEMS", "/data/items.json")
	t.Setenv("AUTOEVAL_CATALOG_INDICATORS", "/data/indicators.json")
	t.Setenv("AUTOEVAL_REPORT_DIR", "/tmp/reports")
	t.Setenv("AUTOEVAL_NATS_URL", "nats://nats:4222")
	t.Setenv("AUTOEVAL_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Catalog.ItemsPath != "/data/items.json" {
		t.Errorf("unexpected items path %q", cfg.Catalog.ItemsPath)
	}
	if cfg.Catalog.IndicatorsPath != "/data/indicators.json" {
		t.Errorf("unexpected indicators path %q", cfg.Catalog.IndicatorsPath)
	}
	if cfg.Report.OutputDir != "/tmp/reports" {
		t.Errorf("unexpected report dir %q", cfg.Report.OutputDir)
	}
	if cfg.Events.URL != "nats://nats:4222" {
		t.Errorf("unexpected events URL %q", cfg.Events.URL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
scoring:
  general_weight: 0.8
  specific_weight: 0.2
events:
  url: nats://localhost:4222
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected port 7000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8081 {
		t.Errorf("unset fields should keep defaults, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Scoring.GeneralWeight != 0.8 || cfg.Scoring.SpecificWeight != 0.2 {
		t.Errorf("unexpected blend weights %f/%f", cfg.Scoring.GeneralWeight, cfg.Scoring.SpecificWeight)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("unexpected events URL %q", cfg.Events.URL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
