package chat

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is one conversation turn.
type Message struct {
	Role    string    `json:"role"` // "user" | "assistant"
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session is the explicit conversation state for one chat session. It is
// created per session and passed to the answerer; there is no global
// history.
type Session struct {
	ID        uuid.UUID `json:"id"`
	StartedAt time.Time `json:"started_at"`
	History   []Message `json:"history"`
}

func NewSession() *Session {
	return &Session{ID: uuid.New(), StartedAt: time.Now()}
}

func (s *Session) append(role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content, At: time.Now()})
}

// HistoryJSON serializes the conversation for download.
func (s *Session) HistoryJSON() ([]byte, error) {
	return json.MarshalIndent(s.History, "", "  ")
}
