package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/samyrami/exporta-facil-bot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.DefaultPath()
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		label := color.New(color.Bold)
		label.Print("Config file:   ")
		fmt.Println(path)

		provider := cfg.Provider
		if provider == "" {
			provider = "(auto-detect)"
		}
		label.Print("Provider:      ")
		fmt.Println(provider)

		model := cfg.Model
		if model == "" {
			model = "(provider default)"
		}
		label.Print("Model:         ")
		fmt.Println(model)

		label.Print("Temperature:   ")
		fmt.Println(cfg.Temperature)
		label.Print("Max tokens:    ")
		fmt.Println(cfg.MaxTokens)

		catalogSrc := "(embedded)"
		if cfg.CatalogPath != "" {
			catalogSrc = cfg.CatalogPath
		} else if cfg.CatalogURL != "" {
			catalogSrc = cfg.CatalogURL
		}
		label.Print("Catalog:       ")
		fmt.Println(catalogSrc)

		label.Print("Database:      ")
		fmt.Println(cfg.DBPath)
		return nil
	},
}
