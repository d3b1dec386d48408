package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/samyrami/exporta-facil-bot/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		events, err := st.EventRepo().RecentLLMRequests(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		header := color.New(color.Bold)
		header.Printf("%-5s  %-19s  %-20s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 104))

		okMark := color.New(color.FgGreen).Sprint("✓")
		failMark := color.New(color.FgRed).Sprint("✗")

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			mark := okMark
			if !e.Success {
				mark = failMark
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-5d  %-19s  %-20s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				mark,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
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

		events, err := st.EventRepo().RecentLLMRequests(context.Background(), 1000)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		var event *store.LLMRequestEvent
		for i := range events {
			if events[i].ID == id {
				event = &events[i]
				break
			}
		}
		if event == nil {
			return fmt.Errorf("event %d not found", id)
		}

		sep := strings.Repeat("─", 60)
		label := color.New(color.Bold)

		label.Print("ID:        ")
		fmt.Println(event.ID)
		label.Print("Time:      ")
		fmt.Println(event.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		label.Print("Provider:  ")
		fmt.Println(event.Provider)
		label.Print("Model:     ")
		fmt.Println(event.Model)
		label.Print("Purpose:   ")
		fmt.Println(event.Purpose)
		label.Print("Tokens:    ")
		fmt.Printf("%d in / %d out\n", event.InputTokens, event.OutputTokens)
		label.Print("Latency:   ")
		fmt.Printf("%dms\n", event.LatencyMs)
		label.Print("Success:   ")
		fmt.Println(event.Success)
		if event.ErrorMessage != "" {
			label.Print("Error:     ")
			color.Red(event.ErrorMessage)
		}

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("REQUEST")
		fmt.Println(sep)
		if event.RequestBody != "" {
			fmt.Println(event.RequestBody)
		} else {
			fmt.Println("(not captured)")
		}

		fmt.Println(sep)
		fmt.Println("RESPONSE")
		fmt.Println(sep)
		if event.ResponseBody != "" {
			fmt.Println(event.ResponseBody)
		} else {
			fmt.Println("(not captured)")
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose (diagnosis-refinement, follow-up-chat)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
}
