package ai

import (
	"context"
	"fmt"

	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/metrics"
)

// GenerationError is returned when both the primary and the fallback path
// failed.
type GenerationError struct {
	Primary  error
	Fallback error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: primary: %v; fallback: %v", e.Primary, e.Fallback)
}

func (e *GenerationError) Unwrap() []error {
	return []error{e.Primary, e.Fallback}
}

type Generator interface {
	Generate(ctx context.Context, prompt, lang string) (string, error)
}

// Gateway sends a prompt to the primary provider and, on any failure, once
// to the fallback. It never retries a path.
type Gateway struct {
	primary  Provider
	fallback Provider
	log      *logger.Logger
}

// NewGateway accepts nil providers; a missing path counts as a failed one.
func NewGateway(primary, fallback Provider, log *logger.Logger) *Gateway {
	return &Gateway{primary: primary, fallback: fallback, log: log.With("component", "ai_gateway")}
}

// NewGatewayFromRegistry resolves both paths by name. A provider that
// cannot be built is logged and left out.
func NewGatewayFromRegistry(ctx context.Context, reg *Registry, primaryName, fallbackName, model string, log *logger.Logger) *Gateway {
	resolve := func(name string) Provider {
		p, err := reg.Get(ctx, name, model)
		if err != nil {
			log.Warn("ai provider unavailable", "provider", name, "error", err)
			return nil
		}
		return p
	}
	return NewGateway(resolve(primaryName), resolve(fallbackName), log)
}

func (g *Gateway) Generate(ctx context.Context, prompt, lang string) (string, error) {
	msgs := []Message{{Role: RoleUser, Content: prompt}}

	primaryErr := ErrNotConfigured
	if g.primary != nil {
		text, err := g.primary.Chat(ctx, msgs)
		metrics.GenerationCounter.WithLabelValues("primary", metrics.Outcome(err)).Inc()
		if err == nil {
			return text, nil
		}
		primaryErr = err
		g.log.Warn("primary generation failed, trying fallback", "lang", lang, "error", err)
	}

	fallbackErr := ErrNotConfigured
	if g.fallback != nil {
		text, err := g.fallback.Chat(ctx, msgs)
		metrics.GenerationCounter.WithLabelValues("fallback", metrics.Outcome(err)).Inc()
		if err == nil {
			return text, nil
		}
		fallbackErr = err
	}

	genErr := &GenerationError{Primary: primaryErr, Fallback: fallbackErr}
	g.log.Error("generation failed on both paths", "lang", lang, "error", genErr)
	return "", genErr
}
