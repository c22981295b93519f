package llm

import "testing"

func TestRegistryOrdering(t *testing.T) {
	r := NewRegistry(
		ModelDescriptor{Provider: "anthropic", ModelID: "claude-haiku", Priority: 3, APIKey: "k3"},
		ModelDescriptor{Provider: "gemini", ModelID: "gemini-flash", Priority: 1, APIKey: "k1"},
		ModelDescriptor{Provider: "openai", ModelID: "gpt-4o-mini", Priority: 2, APIKey: "k2"},
	)

	got := r.ListAvailable()
	if len(got) != 3 {
		t.Fatalf("expected 3 available descriptors, got %d", len(got))
	}
	wantOrder := []string{"gemini", "openai", "anthropic"}
	for i, w := range wantOrder {
		if got[i].Provider != w {
			t.Errorf("position %d: got %q, want %q", i, got[i].Provider, w)
		}
	}
}

func TestRegistryFiltersMissingCredentials(t *testing.T) {
	r := NewRegistry(
		ModelDescriptor{Provider: "openai", ModelID: "gpt-4o-mini", Priority: 1},
		ModelDescriptor{Provider: "anthropic", ModelID: "claude-haiku", Priority: 2, APIKey: "k"},
	)

	got := r.ListAvailable()
	if len(got) != 1 || got[0].Provider != "anthropic" {
		t.Fatalf("expected only anthropic, got %+v", got)
	}
}

func TestRegistryMockNeedsNoCredential(t *testing.T) {
	r := NewRegistry(ModelDescriptor{Provider: "mock", ModelID: "mock", Priority: 0})
	if len(r.ListAvailable()) != 1 {
		t.Fatal("mock descriptor should be available without a key")
	}
	if r.HasCredential() {
		t.Error("mock-only registry should not count as credentialed")
	}
}

func TestStoreSelectAndClear(t *testing.T) {
	var s Store

	if _, ok := s.Snapshot(); ok {
		t.Fatal("empty store should have no selection")
	}

	d := ModelDescriptor{Provider: "openai", ModelID: "gpt-4o", APIKey: "k"}
	s.Select(d)
	got, ok := s.Snapshot()
	if !ok || got.ModelID != "gpt-4o" {
		t.Fatalf("Snapshot = %+v, %v", got, ok)
	}

	s.Clear()
	if _, ok := s.Snapshot(); ok {
		t.Error("Clear should remove the selection")
	}
}

func TestConfigDescriptorsForcedProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	cfg.Anthropic.APIKey = "k"

	r := NewRegistry(cfg.Descriptors()...)
	got := r.ListAvailable()
	if len(got) == 0 || got[0].Provider != "anthropic" {
		t.Fatalf("forced provider should lead the order, got %+v", got)
	}
}

func TestConfigDescriptorsMock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	descs := cfg.Descriptors()
	if len(descs) != 1 || descs[0].Provider != "mock" {
		t.Fatalf("mock config should expand to a single mock descriptor, got %+v", descs)
	}
}
