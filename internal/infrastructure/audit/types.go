package audit

import (
	"time"

	"github.com/google/uuid"
)

// Recorded actions.
const (
	ActionLoginSuccess = "login.success"
	ActionLoginFailure = "login.failure"
	ActionRegister     = "register"
	ActionTaskCreate   = "task.create"
	ActionTaskUpdate   = "task.update"
	ActionTaskDelete   = "task.delete"
)

// Entry is a single audit record. UserID may be empty for failed
// logins where no account was resolved.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	bucketKey []byte
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}
