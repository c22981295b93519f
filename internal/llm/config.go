package llm

import (
	"fmt"
	"os"
)

// Config holds credentials and model selection for every supported
// backend. Loaded once at process start.
type Config struct {
	// Provider, when set, forces that backend to the head of the
	// fallback order. Values: "openai", "anthropic", "gemini",
	// "openrouter", "mock".
	Provider string

	OpenAI     BackendConfig
	Anthropic  BackendConfig
	Gemini     BackendConfig
	OpenRouter BackendConfig
}

// BackendConfig is the per-vendor credential and model choice.
type BackendConfig struct {
	APIKey  string
	Model   string
	BaseURL string // OpenAI-compatible backends only
}

// DefaultConfig returns a Config with default model choices and no
// credentials.
func DefaultConfig() Config {
	return Config{
		OpenAI:     BackendConfig{Model: "gpt-4o-mini"},
		Anthropic:  BackendConfig{Model: "claude-haiku"},
		Gemini:     BackendConfig{Model: "gemini-flash"},
		OpenRouter: BackendConfig{Model: "deepseek/deepseek-chat", BaseURL: defaultOpenRouterBaseURL},
	}
}

// ConfigFromEnv builds a Config from EXAMGEN_* environment variables,
// falling back to the generic vendor variables, then defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.Provider = os.Getenv("EXAMGEN_PROVIDER")

	readBackend(&cfg.OpenAI, "EXAMGEN_OPENAI_API_KEY", "OPENAI_API_KEY", "EXAMGEN_OPENAI_MODEL")
	readBackend(&cfg.Anthropic, "EXAMGEN_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY", "EXAMGEN_ANTHROPIC_MODEL")
	readBackend(&cfg.Gemini, "EXAMGEN_GEMINI_API_KEY", "GEMINI_API_KEY", "EXAMGEN_GEMINI_MODEL")
	readBackend(&cfg.OpenRouter, "EXAMGEN_OPENROUTER_API_KEY", "OPENROUTER_API_KEY", "EXAMGEN_OPENROUTER_MODEL")

	if u := os.Getenv("EXAMGEN_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	if u := os.Getenv("EXAMGEN_OPENROUTER_BASE_URL"); u != "" {
		cfg.OpenRouter.BaseURL = u
	}

	return cfg
}

func readBackend(b *BackendConfig, keyVar, fallbackKeyVar, modelVar string) {
	if k := os.Getenv(keyVar); k != "" {
		b.APIKey = k
	} else if k := os.Getenv(fallbackKeyVar); k != "" {
		b.APIKey = k
	}
	if m := os.Getenv(modelVar); m != "" {
		b.Model = m
	}
}

// Validate checks that a forced provider has its credential set.
func (c Config) Validate() error {
	switch c.Provider {
	case "", "mock":
		return nil
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("EXAMGEN_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("EXAMGEN_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("EXAMGEN_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("EXAMGEN_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// Descriptors expands the config into model descriptors for the
// registry. The default fallback order is gemini, openai, anthropic,
// openrouter; a forced Provider moves to the head.
func (c Config) Descriptors() []ModelDescriptor {
	descs := []ModelDescriptor{
		{Provider: "gemini", ModelID: c.Gemini.Model, Priority: 1, APIKey: c.Gemini.APIKey},
		{Provider: "openai", ModelID: c.OpenAI.Model, Priority: 2, BaseURL: c.OpenAI.BaseURL, APIKey: c.OpenAI.APIKey},
		{Provider: "anthropic", ModelID: c.Anthropic.Model, Priority: 3, APIKey: c.Anthropic.APIKey},
		{Provider: "openrouter", ModelID: c.OpenRouter.Model, Priority: 4, BaseURL: c.OpenRouter.BaseURL, APIKey: c.OpenRouter.APIKey},
	}

	if c.Provider == "mock" {
		return []ModelDescriptor{{Provider: "mock", ModelID: "mock", Priority: 0}}
	}

	for i := range descs {
		if descs[i].Provider == c.Provider {
			descs[i].Priority = 0
		}
	}
	return descs
}
