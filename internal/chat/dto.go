package chat

import (
	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
)

// PostMessageInput carries a user-authored chat message.
type PostMessageInput struct {
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	Body           string
}

// MessageList is one page of a conversation's messages, newest first.
type MessageList struct {
	Items      []models.Message `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// messageEnvelope is the JSON shape published for websocket delivery.
type messageEnvelope struct {
	ID             uuid.UUID  `json:"id"`
	ConversationID uuid.UUID  `json:"conversation_id"`
	SenderID       *uuid.UUID `json:"sender_id,omitempty"`
	Type           string     `json:"type"`
	Body           string     `json:"body"`
}
