package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider wraps OpenAIProvider with OpenRouter defaults.
// OpenRouter exposes an OpenAI-compatible API, so the same SDK serves.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func newOpenRouterProvider(desc ModelDescriptor) (*OpenRouterProvider, error) {
	if desc.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	if desc.BaseURL == "" {
		desc.BaseURL = defaultOpenRouterBaseURL
	}

	inner, err := newOpenAIProvider(desc)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
