package llm

import (
	"sort"
	"sync"
)

// ModelDescriptor identifies one callable LLM backend. Descriptors are
// loaded at process start and never mutated; the operator-selected
// descriptor lives in Store.
type ModelDescriptor struct {
	// Provider selects the SDK: "openai", "anthropic", "gemini",
	// "openrouter", or "mock".
	Provider string

	// ModelID is the model to request, either a friendly alias or a
	// vendor model ID.
	ModelID string

	// Priority orders fallback; lower is tried first.
	Priority int

	// BaseURL overrides the endpoint for OpenAI-compatible gateways.
	BaseURL string

	// APIKey may be absent, which removes the descriptor from the
	// registry's available list.
	APIKey string
}

// Available reports whether the descriptor can be called. The mock
// provider needs no credential.
func (d ModelDescriptor) Available() bool {
	return d.APIKey != "" || d.Provider == "mock"
}

// key uniquely identifies the backend for provider caching.
func (d ModelDescriptor) key() string {
	return d.Provider + "/" + d.ModelID + "/" + d.BaseURL
}

// Registry holds the configured model descriptors. Read-only after
// construction, so safe for concurrent use.
type Registry struct {
	descriptors []ModelDescriptor
}

// NewRegistry builds a registry from descriptors, ordered by ascending
// priority. Order among equal priorities follows the input.
func NewRegistry(descs ...ModelDescriptor) *Registry {
	sorted := make([]ModelDescriptor, len(descs))
	copy(sorted, descs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Registry{descriptors: sorted}
}

// ListAvailable returns the descriptors with a usable credential, in
// priority order. The slice is a copy.
func (r *Registry) ListAvailable() []ModelDescriptor {
	var out []ModelDescriptor
	for _, d := range r.descriptors {
		if d.Available() {
			out = append(out, d)
		}
	}
	return out
}

// HasCredential reports whether any non-mock descriptor is callable.
// Batch generation uses this to decide whether to pace calls.
func (r *Registry) HasCredential() bool {
	for _, d := range r.descriptors {
		if d.Provider != "mock" && d.Available() {
			return true
		}
	}
	return false
}

// Store owns the administratively selected descriptor. It is the only
// mutable process-wide state in the pipeline; generation reads it once
// per call via Snapshot.
type Store struct {
	mu       sync.RWMutex
	selected *ModelDescriptor
}

// Select switches the active descriptor. Administrative action, not part
// of the generation hot path.
func (s *Store) Select(d ModelDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &d
}

// Clear removes the selection, restoring registry priority order.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Snapshot returns the selected descriptor, if any.
func (s *Store) Snapshot() (ModelDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return ModelDescriptor{}, false
	}
	return *s.selected, true
}
