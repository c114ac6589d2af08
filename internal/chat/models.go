package chat

import "time"

// Turn is one farmer message and the advisor's answer.
type Turn struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint64    `gorm:"not null;index:idx_chat_turn_user_session,priority:1" json:"-"`
	SessionID        string    `gorm:"type:varchar(26);not null;index:idx_chat_turn_user_session,priority:2;index" json:"session_id"`
	UserMessage      string    `gorm:"not null" json:"user_message"`
	AIResponse       string    `gorm:"not null" json:"ai_response"`
	Language         string    `gorm:"type:varchar(8);not null;default:en" json:"language"`
	HasImages        bool      `gorm:"not null;default:false" json:"has_images"`
	DetectedDiseases *string   `json:"detected_diseases,omitempty"`
	CreatedAt        time.Time `gorm:"index" json:"timestamp"`
}

func (Turn) TableName() string { return "chat_turns" }

// SessionSummary is derived from the turns sharing a session id.
type SessionSummary struct {
	SessionID        string    `json:"session_id"`
	Title            string    `json:"title"`
	MessageCount     int64     `json:"message_count"`
	FirstMessageTime time.Time `json:"first_message_time"`
	SizeMB           float64   `json:"size_mb"`
	IsFull           bool      `json:"is_full"`
}
