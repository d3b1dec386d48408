package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Temperature != 0.7 || cfg.MaxTokens != 1000 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Provider != "" {
		t.Errorf("Provider = %q, want auto-detect", cfg.Provider)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `provider: anthropic
model: claude-sonnet
temperature: 0.3
max_tokens: 600
catalog_path: /tmp/preguntas.json
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != "anthropic" || cfg.Model != "claude-sonnet" {
		t.Errorf("provider/model = %q/%q", cfg.Provider, cfg.Model)
	}
	if cfg.Temperature != 0.3 || cfg.MaxTokens != 600 {
		t.Errorf("tuning = %v/%d", cfg.Temperature, cfg.MaxTokens)
	}
	if cfg.CatalogPath != "/tmp/preguntas.json" {
		t.Errorf("CatalogPath = %q", cfg.CatalogPath)
	}
	// Unset fields keep their defaults.
	if cfg.DBPath == "" {
		t.Error("DBPath default lost")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("provider: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("want error for malformed yaml")
	}
}

func TestLoadRejectsOutOfRangeTemperature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("temperature: 3.5"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("want error for temperature out of range")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("provider: openai\nmodel: gpt-4o-mini\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EXPORTA_LLM_PROVIDER", "gemini")
	t.Setenv("EXPORTA_MODEL", "gemini-flash")
	t.Setenv("EXPORTA_DB", "/tmp/exporta-test.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider != "gemini" || cfg.Model != "gemini-flash" {
		t.Errorf("env overlay lost: %q/%q", cfg.Provider, cfg.Model)
	}
	if cfg.DBPath != "/tmp/exporta-test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "exporta", "config.yaml") {
		t.Errorf("DefaultPath = %q", got)
	}
}
