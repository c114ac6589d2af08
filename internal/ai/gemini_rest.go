package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxRawInError = 500

// ParseError reports a 200 response whose body did not carry a single
// candidate text at candidates[0].content.parts[0].text.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gemini-rest: unexpected response shape: %s", e.Raw)
}

func newParseError(body []byte) *ParseError {
	raw := string(body)
	if len(raw) > maxRawInError {
		raw = raw[:maxRawInError] + "..."
	}
	return &ParseError{Raw: raw}
}

// GeminiRESTProvider posts straight to the generateContent endpoint.
type GeminiRESTProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiReq struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResp struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewGeminiRESTProvider(baseURL, apiKey, model string) *GeminiRESTProvider {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiRESTProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Endpoint returns the request URL with the key replaced, for logs.
func (p *GeminiRESTProvider) Endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=***", strings.TrimRight(p.BaseURL, "/"), p.Model)
}

func (p *GeminiRESTProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if p.Client == nil {
		return "", errors.New("gemini-rest: http client is nil")
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return "", ErrNotConfigured
	}

	reqBody := geminiReq{
		Contents: func() []geminiContent {
			out := make([]geminiContent, 0, len(messages))
			for _, m := range messages {
				c := geminiContent{Parts: []geminiPart{{Text: m.Content}}}
				if m.Role == RoleAssistant {
					c.Role = "model"
				}
				out = append(out, c)
			}
			return out
		}(),
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(p.BaseURL, "/"), url.PathEscape(p.Model), url.QueryEscape(p.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			// the url carries the key
			return "", fmt.Errorf("gemini-rest: %s %s: %w", uerr.Op, p.Endpoint(), uerr.Err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("gemini-rest: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxRawInError {
			msg = msg[:maxRawInError]
		}
		if msg == "" {
			msg = "empty body"
		}
		return "", fmt.Errorf("gemini-rest: status %d: %s", resp.StatusCode, msg)
	}

	var decoded geminiResp
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", newParseError(body)
	}
	if len(decoded.Candidates) == 0 ||
		len(decoded.Candidates[0].Content.Parts) == 0 ||
		decoded.Candidates[0].Content.Parts[0].Text == nil {
		return "", newParseError(body)
	}
	return *decoded.Candidates[0].Content.Parts[0].Text, nil
}
