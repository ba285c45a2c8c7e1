package transcript

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

const PlaceholderText = "Typing..."

type Message struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Text    string    `json:"text"`
	Pending bool      `json:"pending,omitempty"`
	Time    time.Time `json:"time"`
}

func NewMessage(role Role, text string) Message {
	return Message{
		ID:   uuid.NewString()[:8],
		Role: role,
		Text: text,
		Time: time.Now(),
	}
}

func User(text string) Message { return NewMessage(RoleUser, text) }
func Bot(text string) Message  { return NewMessage(RoleBot, text) }

// Placeholder is the pending bot message shown while a reply is outstanding.
func Placeholder() Message {
	m := NewMessage(RoleBot, PlaceholderText)
	m.Pending = true
	return m
}
