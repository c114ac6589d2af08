package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const (
	ProviderGenAI      = "genai"
	ProviderGeminiREST = "gemini-rest"
)

type ProviderFactory func(ctx context.Context, model string) (Provider, error)

type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

// NewGeminiRegistry registers the client-library and REST paths for one key.
func NewGeminiRegistry(apiKey, restBaseURL string) *Registry {
	r := NewRegistry()
	r.Register(ProviderGenAI, func(ctx context.Context, model string) (Provider, error) {
		return NewGenAIProvider(ctx, apiKey, model)
	})
	r.Register(ProviderGeminiREST, func(ctx context.Context, model string) (Provider, error) {
		if strings.TrimSpace(apiKey) == "" {
			return nil, ErrNotConfigured
		}
		return NewGeminiRESTProvider(restBaseURL, apiKey, model), nil
	})
	return r
}

func (r *Registry) Register(name string, f ProviderFactory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

func (r *Registry) Get(ctx context.Context, name string, model string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown ai provider: %s", name)
	}
	return f(ctx, model)
}
