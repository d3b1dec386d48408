package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Borrar la sesión guardada",
	Long:  "Elimina los datos de contacto, respuestas y diagnóstico guardados. La API key almacenada se conserva.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Gateway().ClearSession(context.Background()); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Sesión eliminada.")
		return nil
	},
}
