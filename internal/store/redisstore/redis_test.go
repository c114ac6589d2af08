package redisstore

import (
	"context"
	"os"
	"testing"
)

// Runs against a real Redis when REDIS_TEST_ADDR is set.
func TestActiveSession_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	s, err := New(addr, "", 15)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()
	ctx := context.Background()
	defer s.Client().Del(ctx, activeKey(424242))

	if _, ok, err := s.ActiveSession(ctx, 424242); err != nil || ok {
		t.Fatalf("expected no session, ok=%v err=%v", ok, err)
	}
	if err := s.SetActiveSession(ctx, 424242, "01J0000000000000000000000A"); err != nil {
		t.Fatalf("set: %v", err)
	}
	sid, ok, err := s.ActiveSession(ctx, 424242)
	if err != nil || !ok || sid != "01J0000000000000000000000A" {
		t.Fatalf("got sid=%q ok=%v err=%v", sid, ok, err)
	}
}

func TestActiveKey(t *testing.T) {
	if got := activeKey(7); got != "krishi:active_session:7" {
		t.Fatalf("unexpected key %q", got)
	}
}
