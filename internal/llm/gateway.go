package llm

import (
	"context"
	"fmt"
	"sync"
)

// Gateway performs completion calls against arbitrary descriptors. It is
// a thin I/O boundary: one network call per Complete, no retry. Provider
// clients are built lazily and cached per backend.
type Gateway struct {
	mu        sync.Mutex
	providers map[string]Provider
	sink      EventSink
	mock      *MockProvider
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithSink records every request and response through the sink.
func WithSink(sink EventSink) GatewayOption {
	return func(g *Gateway) { g.sink = sink }
}

// WithMock routes "mock" descriptors to the given provider instead of an
// empty one. Test seam.
func WithMock(m *MockProvider) GatewayOption {
	return func(g *Gateway) { g.mock = m }
}

// NewGateway creates a Gateway.
func NewGateway(opts ...GatewayOption) *Gateway {
	g := &Gateway{providers: make(map[string]Provider)}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Complete performs exactly one completion call against the descriptor's
// backend. Fails with ErrTransport/ErrRateLimit on HTTP or network
// failure and ErrEmptyResponse when no completion text came back.
func (g *Gateway) Complete(ctx context.Context, desc ModelDescriptor, req Request) (*Response, error) {
	p, err := g.provider(ctx, desc)
	if err != nil {
		return nil, err
	}
	return p.Generate(ctx, req)
}

// Probe sends a minimal completion to the descriptor's backend to check
// connectivity and credentials. Unlike Complete, the probe retries
// transient failures, so a flaky network does not report a dead backend.
func (g *Gateway) Probe(ctx context.Context, desc ModelDescriptor) error {
	p, err := g.provider(ctx, desc)
	if err != nil {
		return err
	}
	_, err = WithRetry(p, DefaultRetryConfig()).Generate(ctx, Request{
		Messages:  []Message{{Role: RoleUser, Content: "ping"}},
		MaxTokens: 8,
	})
	return err
}

func (g *Gateway) provider(ctx context.Context, desc ModelDescriptor) (Provider, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if p, ok := g.providers[desc.key()]; ok {
		return p, nil
	}

	base, err := g.build(ctx, desc)
	if err != nil {
		return nil, err
	}
	if g.sink != nil {
		base = WithLogging(base, g.sink)
	}

	g.providers[desc.key()] = base
	return base, nil
}

func (g *Gateway) build(ctx context.Context, desc ModelDescriptor) (Provider, error) {
	switch desc.Provider {
	case "openai":
		return newOpenAIProvider(desc)
	case "openrouter":
		return newOpenRouterProvider(desc)
	case "anthropic":
		return newAnthropicProvider(desc)
	case "gemini":
		return newGeminiProvider(ctx, desc)
	case "mock":
		if g.mock != nil {
			return g.mock, nil
		}
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %q", desc.Provider)
	}
}
