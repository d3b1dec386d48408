package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samyrami/exporta-facil-bot/internal/config"
	"github.com/samyrami/exporta-facil-bot/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "exporta",
	Short: "Termómetro del exportador",
	Long:  "Exporta Fácil — diagnóstico interactivo de capacidad exportadora para pymes, del Laboratorio de Gobierno de la Universidad de La Sabana.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// A local .env is optional; missing files are ignored.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXPORTA_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/exporta/config.yaml)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config or the default
// location, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}

// openStore resolves the database path and opens the store.
func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	} else if err := store.EnsureDir(path); err != nil {
		return nil, err
	}
	return store.Open(path)
}
