package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samyrami/exporta-facil-bot/internal/app"
	"github.com/samyrami/exporta-facil-bot/internal/assistant"
	"github.com/samyrami/exporta-facil-bot/internal/catalog"
	"github.com/samyrami/exporta-facil-bot/internal/config"
	"github.com/samyrami/exporta-facil-bot/internal/diagnosis"
	"github.com/samyrami/exporta-facil-bot/internal/llm"
	"github.com/samyrami/exporta-facil-bot/internal/wizard"
)

// runApp loads configuration, opens the store, builds dependencies and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load question catalog: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	gw := st.Gateway()
	ctrl, err := wizard.New(ctx, cat, gw)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	eventRepo := st.EventRepo()
	llmCfg, err := llm.ResolveConfig(ctx, gw)
	if cfg.Provider != "" {
		llmCfg.Provider = cfg.Provider
	}
	applyModelOverride(&llmCfg, cfg.Model)

	opts := app.Options{
		Controller:      ctrl,
		Gateway:         gw,
		AssistantConfig: assistantConfig(cfg),
		ProviderFactory: func(ctx context.Context, key string) (llm.Provider, error) {
			c := llmCfg
			c.SetAPIKey(key)
			return llm.NewProvider(ctx, c, eventRepo)
		},
	}

	switch {
	case err == nil:
		provider, perr := llm.NewProvider(ctx, llmCfg, eventRepo)
		if perr != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not available:", perr)
			fmt.Fprintln(os.Stderr, "El refinamiento con IA y el chat pedirán una API key.")
		} else {
			opts.Provider = provider
			opts.Refiner = diagnosis.NewRefiner(provider, refinerConfig(cfg))
		}
	case errors.Is(err, llm.ErrNotConfigured):
		// The chat screen will prompt for a key interactively.
	default:
		return fmt.Errorf("resolve LLM credentials: %w", err)
	}

	return app.Run(opts)
}

// loadCatalog picks the question source: an explicit file, a remote
// URL, or the embedded catalog.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	switch {
	case cfg.CatalogPath != "":
		return catalog.LoadFile(cfg.CatalogPath)
	case cfg.CatalogURL != "":
		return catalog.Fetch(ctx, cfg.CatalogURL)
	default:
		return catalog.Embedded(), nil
	}
}

func refinerConfig(cfg *config.Config) diagnosis.RefinerConfig {
	rc := diagnosis.DefaultRefinerConfig()
	if cfg.MaxTokens > 0 {
		rc.MaxTokens = cfg.MaxTokens
	}
	if cfg.Temperature > 0 {
		rc.Temperature = cfg.Temperature
	}
	return rc
}

func assistantConfig(cfg *config.Config) assistant.Config {
	ac := assistant.DefaultConfig()
	if cfg.MaxTokens > 0 {
		ac.MaxTokens = cfg.MaxTokens
	}
	if cfg.Temperature > 0 {
		ac.Temperature = cfg.Temperature
	}
	return ac
}

// applyModelOverride points the selected provider at the configured
// model name or alias.
func applyModelOverride(llmCfg *llm.Config, model string) {
	if model == "" {
		return
	}
	switch llmCfg.Provider {
	case "anthropic":
		llmCfg.Anthropic.Model = model
	case "openai":
		llmCfg.OpenAI.Model = model
	case "gemini":
		llmCfg.Gemini.Model = model
	case "openrouter":
		llmCfg.OpenRouter.Model = model
	}
}
