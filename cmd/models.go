package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect configured LLM backends",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, _, store, err := buildLLM(cmd)
		if err != nil {
			return err
		}

		available := registry.ListAvailable()
		if len(available) == 0 {
			fmt.Println("No backends available. Set EXAMGEN_OPENAI_API_KEY or a sibling variable.")
			return nil
		}

		selected, hasSelection := store.Snapshot()
		fmt.Printf("%-3s  %-12s  %-32s  %s\n", "", "Provider", "Model", "Priority")
		for _, d := range available {
			marker := ""
			if hasSelection && d.Provider == selected.Provider && d.ModelID == selected.ModelID {
				marker = "*"
			}
			fmt.Printf("%-3s  %-12s  %-32s  %d\n", marker, d.Provider, d.ModelID, d.Priority)
		}
		return nil
	},
}

var modelsPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Probe each available backend with a minimal request",
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")

		registry, gateway, _, err := buildLLM(cmd)
		if err != nil {
			return err
		}

		available := registry.ListAvailable()
		if len(available) == 0 {
			return fmt.Errorf("no backends available")
		}

		failed := 0
		for _, d := range available {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			start := time.Now()
			err := gateway.Probe(ctx, d)
			cancel()

			if err != nil {
				failed++
				fmt.Printf("%-12s  %-32s  FAIL  %v\n", d.Provider, d.ModelID, err)
				continue
			}
			fmt.Printf("%-12s  %-32s  OK    %s\n", d.Provider, d.ModelID, time.Since(start).Round(time.Millisecond))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d backends unreachable", failed, len(available))
		}
		return nil
	},
}

func init() {
	modelsPingCmd.Flags().Duration("timeout", 30*time.Second, "Per-backend probe timeout")
	modelsCmd.AddCommand(modelsPingCmd)
}
