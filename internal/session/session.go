// ABOUTME: Session model: id, timestamps, conversation history, and usage stats
// ABOUTME: IDs are the first 8 hex chars of a UUIDv4

package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/goclaw/goclaw/internal/agent"
	"github.com/goclaw/goclaw/pkg/ai"
)

// Session is one saved conversation.
type Session struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Model     string             `json:"model"`
	Messages  []ai.Message       `json:"messages"`
	Stats     agent.SessionStats `json:"stats"`
}

// New creates an empty session for the given model.
func New(model string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString()[:8],
		CreatedAt: now,
		UpdatedAt: now,
		Model:     model,
	}
}

// Title derives a short label from the first user message.
func (s *Session) Title() string {
	for _, m := range s.Messages {
		if m.Role == ai.RoleUser {
			title := m.Content
			if len(title) > 60 {
				title = title[:60] + "..."
			}
			return title
		}
	}
	return "(empty session)"
}
