package chat

import (
	"context"
	"sync"
)

// ActiveSessions remembers which session new turns of a user go to.
type ActiveSessions interface {
	ActiveSession(ctx context.Context, userID uint64) (string, bool, error)
	SetActiveSession(ctx context.Context, userID uint64, sessionID string) error
}

// MemoryActiveSessions is the single-process ActiveSessions.
type MemoryActiveSessions struct {
	mu     sync.RWMutex
	byUser map[uint64]string
}

func NewMemoryActiveSessions() *MemoryActiveSessions {
	return &MemoryActiveSessions{byUser: make(map[uint64]string)}
}

func (m *MemoryActiveSessions) ActiveSession(_ context.Context, userID uint64) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sid, ok := m.byUser[userID]
	return sid, ok, nil
}

func (m *MemoryActiveSessions) SetActiveSession(_ context.Context, userID uint64, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byUser[userID] = sessionID
	return nil
}
