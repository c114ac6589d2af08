package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GenAIProvider calls Gemini through the official client library.
type GenAIProvider struct {
	client *genai.Client
	Model  string
}

func NewGenAIProvider(ctx context.Context, apiKey, model string) (*GenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai: creating client: %w", err)
	}
	return &GenAIProvider{client: client, Model: model}, nil
}

func (p *GenAIProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if p.client == nil {
		return "", errors.New("genai: client is nil")
	}
	res, err := p.client.Models.GenerateContent(ctx, p.Model, toGenAIContents(messages), nil)
	if err != nil {
		return "", fmt.Errorf("genai: generate content: %w", err)
	}
	text := res.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("genai: empty response")
	}
	return text, nil
}

func toGenAIContents(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}
