package chat

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("chat: not found")
	ErrForbidden      = errors.New("chat: session belongs to another user")
	ErrInvalidSession = errors.New("chat: invalid session id")
	ErrEmptyMessage   = errors.New("chat: message is required")
)

// SessionFullError rejects a write to a session at or over its size limit.
type SessionFullError struct {
	CurrentMB float64
	LimitMB   float64
}

func (e *SessionFullError) Error() string {
	return fmt.Sprintf("chat: session is full (%.2f MB of %.2f MB), start a new chat", e.CurrentMB, e.LimitMB)
}
