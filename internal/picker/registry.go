package picker

import (
	"context"
	"sync"

	"zettel/internal/logging"
)

// The override switch: a process-wide strategy registry. The default
// provider handles every prompt until Enable installs an override; Disable
// restores the default. Both transitions are idempotent and there is no
// intermediate state.
var registry = struct {
	mu       sync.Mutex
	current  PromptProvider
	original PromptProvider
	enabled  bool
}{}

// SetDefault installs the baseline provider. Called once at startup, before
// any prompt runs.
func SetDefault(p PromptProvider) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.current = p
	if !registry.enabled {
		registry.original = p
	}
}

// Enable installs p as the provider for every call site. Enabling twice is
// a no-op after the first transition.
func Enable(p PromptProvider) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.enabled {
		return
	}
	registry.original = registry.current
	registry.current = p
	registry.enabled = true
	logging.Get(logging.CategoryPicker).Debug("prompt override enabled")
}

// Disable restores the provider that was active before Enable. Disabling
// twice is a no-op after the first transition.
func Disable() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if !registry.enabled {
		return
	}
	registry.current = registry.original
	registry.enabled = false
	logging.Get(logging.CategoryPicker).Debug("prompt override disabled")
}

// Enabled reports whether the override is active.
func Enabled() bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.enabled
}

// Current returns the active provider.
func Current() PromptProvider {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.current
}

// SelectNode routes a note prompt through the active provider.
func SelectNode(ctx context.Context, cands []Candidate, opts Options) (Selection, error) {
	return Current().SelectNode(ctx, cands, opts)
}

// SelectRef routes a reference prompt through the active provider.
func SelectRef(ctx context.Context, cands []Candidate, opts Options) (Selection, error) {
	return Current().SelectRef(ctx, cands, opts)
}
