package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiRESTChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s", r.Method)
		}
		if r.URL.Path != "/models/test-model:generateContent" {
			t.Errorf("path=%s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "secret" {
			t.Errorf("key not passed as query param")
		}
		var body geminiReq
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(body.Contents) != 1 || body.Contents[0].Parts[0].Text != "hello farmer" || body.Contents[0].Role != "" {
			t.Errorf("unexpected body %+v", body)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"namaste"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiRESTProvider(srv.URL, "secret", "test-model")
	got, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hello farmer"}})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "namaste" {
		t.Fatalf("got %q", got)
	}
}

func TestGeminiRESTParseError(t *testing.T) {
	long := strings.Repeat("x", 2000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[],"note":"` + long + `"}`))
	}))
	defer srv.Close()

	p := NewGeminiRESTProvider(srv.URL, "secret", "m")
	_, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err=%v want ParseError", err)
	}
	if len(perr.Raw) > maxRawInError+3 {
		t.Fatalf("raw payload not truncated: %d bytes", len(perr.Raw))
	}
}

func TestGeminiRESTNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`quota exceeded`))
	}))
	defer srv.Close()

	p := NewGeminiRESTProvider(srv.URL, "secret", "m")
	_, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "status 429") {
		t.Fatalf("err=%v", err)
	}
}

func TestGeminiRESTTransportErrorHidesKey(t *testing.T) {
	p := NewGeminiRESTProvider("http://127.0.0.1:1", "supersecret", "m")
	_, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if strings.Contains(err.Error(), "supersecret") {
		t.Fatalf("error leaks api key: %v", err)
	}
}

func TestGeminiRESTWithoutKey(t *testing.T) {
	p := NewGeminiRESTProvider("", "", "")
	if _, err := p.Chat(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err=%v", err)
	}
}
