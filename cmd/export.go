package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/samyrami/exporta-facil-bot/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exportar el último diagnóstico a un archivo",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("output")

		if format != "txt" && format != "csv" {
			return fmt.Errorf("unknown format %q (want txt or csv)", format)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		result, err := st.Gateway().Diagnosis(context.Background())
		if err != nil {
			return fmt.Errorf("load diagnosis: %w", err)
		}
		if result == nil {
			return fmt.Errorf("no hay diagnóstico guardado; completa primero la evaluación")
		}

		var content string
		if format == "csv" {
			content = report.CSV(result)
		} else {
			content = report.Text(result)
		}

		if out == "" {
			out = report.Filename(result, format, time.Now())
		}
		if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Println("Reporte guardado en", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "txt", "Report format: txt or csv")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: diagnostico-exportador-<empresa>-<fecha>.<ext>)")
}
