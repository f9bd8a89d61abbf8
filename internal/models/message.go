package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat message inside a two-party conversation. The
// conversation key is derived from the participant pair, not stored per user.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
