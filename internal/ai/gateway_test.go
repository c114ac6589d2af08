package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/suPer8Hu/krishi-mitra/internal/logger"
)

type stubProvider struct {
	text  string
	err   error
	calls int
	last  []Message
}

func (s *stubProvider) Chat(_ context.Context, msgs []Message) (string, error) {
	s.calls++
	s.last = msgs
	return s.text, s.err
}

func TestGatewayPrimarySuccessSkipsFallback(t *testing.T) {
	primary := &stubProvider{text: "from primary"}
	fallback := &stubProvider{text: "from fallback"}
	g := NewGateway(primary, fallback, logger.Nop())

	got, err := g.Generate(context.Background(), "prompt", "en")
	if err != nil || got != "from primary" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback called %d times", fallback.calls)
	}
	if primary.last[0].Content != "prompt" || primary.last[0].Role != RoleUser {
		t.Fatalf("unexpected messages %+v", primary.last)
	}
}

func TestGatewayFallsBackOnce(t *testing.T) {
	primary := &stubProvider{err: errors.New("boom")}
	fallback := &stubProvider{text: "from fallback"}
	g := NewGateway(primary, fallback, logger.Nop())

	got, err := g.Generate(context.Background(), "prompt", "hi")
	if err != nil || got != "from fallback" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("calls primary=%d fallback=%d", primary.calls, fallback.calls)
	}
}

func TestGatewayBothFail(t *testing.T) {
	errPrimary := errors.New("primary down")
	errFallback := &ParseError{Raw: "{}"}
	g := NewGateway(&stubProvider{err: errPrimary}, &stubProvider{err: errFallback}, logger.Nop())

	_, err := g.Generate(context.Background(), "prompt", "en")
	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("err=%v want GenerationError", err)
	}
	if !errors.Is(err, errPrimary) {
		t.Fatalf("primary cause not reachable")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("fallback cause not reachable")
	}
}

func TestGatewayWithoutPrimaryUsesFallback(t *testing.T) {
	fallback := &stubProvider{text: "ok"}
	g := NewGateway(nil, fallback, logger.Nop())
	if got, err := g.Generate(context.Background(), "p", "en"); err != nil || got != "ok" {
		t.Fatalf("got %q err=%v", got, err)
	}

	empty := NewGateway(nil, nil, logger.Nop())
	_, err := empty.Generate(context.Background(), "p", "en")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err=%v", err)
	}
}

func TestRegistryUnknownAndUnconfigured(t *testing.T) {
	reg := NewGeminiRegistry("", "")
	if _, err := reg.Get(context.Background(), "ollama", "m"); err == nil {
		t.Fatalf("expected unknown provider error")
	}
	if _, err := reg.Get(context.Background(), ProviderGenAI, "m"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("genai without key: %v", err)
	}
	if _, err := reg.Get(context.Background(), " Gemini-REST ", "m"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("rest without key: %v", err)
	}

	g := NewGatewayFromRegistry(context.Background(), reg, ProviderGenAI, ProviderGeminiREST, "m", logger.Nop())
	if _, err := g.Generate(context.Background(), "p", "en"); err == nil {
		t.Fatalf("expected failure without providers")
	}
}
