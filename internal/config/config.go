// Package config loads the application configuration file and overlays
// environment variables on top of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/samyrami/exporta-facil-bot/internal/store"
)

// Config holds the user-tunable application settings. LLM credentials
// are not stored here; they come from the environment or the session
// database.
type Config struct {
	// Provider selects the LLM backend: "openai", "anthropic",
	// "gemini", "openrouter" or "mock". Empty means auto-detect from
	// available API keys.
	Provider string `yaml:"provider"`

	// Model overrides the provider's default model or alias.
	Model string `yaml:"model"`

	// Temperature for refinement and chat requests.
	Temperature float64 `yaml:"temperature"`

	// MaxTokens caps the response size of a single LLM request.
	MaxTokens int `yaml:"max_tokens"`

	// CatalogPath points to a question catalog JSON file. Empty uses
	// the embedded catalog.
	CatalogPath string `yaml:"catalog_path"`

	// CatalogURL fetches the catalog over HTTP instead. CatalogPath
	// wins when both are set.
	CatalogURL string `yaml:"catalog_url"`

	// DBPath is the session database location.
	DBPath string `yaml:"db_path"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	dbPath, _ := store.DefaultDBPath()
	return &Config{
		Temperature: 0.7,
		MaxTokens:   1000,
		DBPath:      dbPath,
	}
}

// DefaultPath returns the standard config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "exporta", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "exporta", "config.yaml")
}

// Load reads the config file at path, starting from defaults. A missing
// file is not an error; a malformed one is. Environment variables are
// applied last and win over the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %v out of range [0, 2]", c.Temperature)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative")
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("EXPORTA_LLM_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("EXPORTA_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("EXPORTA_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxTokens = n
		}
	}
	if v := os.Getenv("EXPORTA_CATALOG_PATH"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("EXPORTA_CATALOG_URL"); v != "" {
		c.CatalogURL = v
	}
	if v := os.Getenv("EXPORTA_DB"); v != "" {
		c.DBPath = v
	}
}
