package cmd

import (
	"fmt"
	"strings"

	"github.com/examforge/examgen/internal/llm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "examgen",
	Short: "LLM-backed exam question generation",
	Long: "Examgen turns course material into exam questions (single choice,\n" +
		"multiple choice, true/false) via configurable LLM backends, with\n" +
		"deterministic format correction and compliance review.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("model", "", "Force a backend (provider or provider/model-id), e.g. \"openai\" or \"openai/gpt-4o\"")
	rootCmd.PersistentFlags().String("llm-log", "", "Append LLM request/response events to this JSONL file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildLLM assembles the registry, gateway and model store from the
// environment plus the persistent flags.
func buildLLM(cmd *cobra.Command) (*llm.Registry, *llm.Gateway, *llm.Store, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("llm config: %w", err)
	}

	var opts []llm.GatewayOption
	if path, _ := cmd.Flags().GetString("llm-log"); path != "" {
		sink, err := llm.NewFileSink(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open llm log: %w", err)
		}
		opts = append(opts, llm.WithSink(sink))
	}

	registry := llm.NewRegistry(cfg.Descriptors()...)
	store := &llm.Store{}

	if spec, _ := cmd.Flags().GetString("model"); spec != "" {
		desc, err := resolveModel(registry, spec)
		if err != nil {
			return nil, nil, nil, err
		}
		store.Select(desc)
	}

	return registry, llm.NewGateway(opts...), store, nil
}

// resolveModel matches a --model spec against the available
// descriptors. "provider" picks that provider's configured model;
// "provider/model-id" must match both parts.
func resolveModel(registry *llm.Registry, spec string) (llm.ModelDescriptor, error) {
	provider, modelID, _ := strings.Cut(spec, "/")
	for _, d := range registry.ListAvailable() {
		if d.Provider != provider {
			continue
		}
		if modelID == "" || d.ModelID == modelID {
			return d, nil
		}
	}
	return llm.ModelDescriptor{}, fmt.Errorf("no available backend matches %q", spec)
}
