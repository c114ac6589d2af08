package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("SESSION_LIMIT_MB", "")
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("AI_PRIMARY_PROVIDER", "")
	t.Setenv("CHAT_HISTORY_LIMIT", "")
	t.Setenv("LOG_MODE", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	if cfg.SessionLimitMB != 16 {
		t.Fatalf("expected 16MB session limit, got %v", cfg.SessionLimitMB)
	}
	if cfg.ChatHistoryLimit != 50 {
		t.Fatalf("expected history limit 50, got %d", cfg.ChatHistoryLimit)
	}
	if cfg.CacheBackend != "memory" || cfg.AIPrimaryProvider != "genai" {
		t.Fatalf("unexpected defaults: cache=%s primary=%s", cfg.CacheBackend, cfg.AIPrimaryProvider)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_LIMIT_MB", "2.5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("WORKER_CONCURRENCY", "7")

	cfg := Load()
	if cfg.SessionLimitMB != 2.5 {
		t.Fatalf("expected 2.5, got %v", cfg.SessionLimitMB)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %#v", cfg.CORSOrigins)
	}
	if cfg.WorkerConcurrency != 7 {
		t.Fatalf("expected 7 workers, got %d", cfg.WorkerConcurrency)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := Load()
	cfg.SessionLimitMB = 0
	cfg.CacheBackend = "memcached"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LOG_MODE", "prod")
	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for default secret in production")
	}
	cfg.JWTSecret = "real-secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
