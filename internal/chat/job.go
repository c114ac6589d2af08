package chat

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Job is a chat turn answered by the worker instead of the request.
type Job struct {
	ID string `gorm:"primaryKey;size:26" json:"job_id"` // ULID length

	UserID    uint64 `gorm:"index;not null;index:uniq_user_idempo,unique,priority:1" json:"-"`
	SessionID string `gorm:"size:26;index;not null" json:"session_id"`

	Message          string  `gorm:"not null" json:"-"`
	UserQuery        string  `json:"-"`
	Language         string  `gorm:"type:varchar(8);not null" json:"language"`
	DetectedDiseases *string `json:"-"`
	ImageCount       int     `gorm:"not null;default:0" json:"-"`

	IdempotencyKey *string `gorm:"type:varchar(128);index:uniq_user_idempo,unique,priority:2" json:"idempotency_key,omitempty"`

	Status JobStatus `gorm:"type:varchar(16);index;not null" json:"status"`

	// Filled when succeeded
	ResultTurnID *uint64 `gorm:"index" json:"result_turn_id,omitempty"`
	Response     *string `json:"response,omitempty"`

	// Filled when failed
	Error *string `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Job) TableName() string { return "chat_jobs" }
