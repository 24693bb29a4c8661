// Package conversations implements the conversation memory domain: append-only
// turn storage keyed by thread, with recency-bounded retrieval for context loading.
package conversations

import (
	"time"

	"github.com/google/uuid"
)

// Roles recorded for conversation turns.
const (
	RoleVendor    = "vendor"
	RoleAssistant = "assistant"
)

// Turn represents a single message in a conversation thread. Seq is assigned
// by the database and breaks created_at ties between turns stored in the same
// transaction window.
type Turn struct {
	ID        uuid.UUID `json:"id"`
	ThreadID  string    `json:"thread_id"`
	Seq       int64     `json:"seq"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
