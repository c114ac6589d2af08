package ai

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestToGenAIContentsMapsRoles(t *testing.T) {
	contents := toGenAIContents([]Message{
		{Role: RoleUser, Content: "wheat sowing time?"},
		{Role: RoleAssistant, Content: "November."},
	})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != genai.RoleUser || contents[1].Role != genai.RoleModel {
		t.Fatalf("unexpected roles: %q %q", contents[0].Role, contents[1].Role)
	}
	if contents[0].Parts[0].Text != "wheat sowing time?" {
		t.Fatalf("unexpected text: %q", contents[0].Parts[0].Text)
	}
}

func TestNewGenAIProviderWithoutKey(t *testing.T) {
	if _, err := NewGenAIProvider(context.Background(), "", "gemini-2.5-flash"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
