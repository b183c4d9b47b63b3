package notifications

import (
	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/enums"
)

// NotifyInput carries everything needed to emit one in-app notification.
type NotifyInput struct {
	UserID  uuid.UUID
	Type    enums.NotificationType
	Title   string
	Body    string
	Payload map[string]any
}

// List is one page of a user's notifications plus the cursor for the next.
type List struct {
	Items      []models.Notification `json:"items"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

// pushEnvelope is the JSON shape published for websocket delivery.
type pushEnvelope struct {
	ID      uuid.UUID              `json:"id"`
	Type    enums.NotificationType `json:"type"`
	Title   string                 `json:"title"`
	Body    string                 `json:"body"`
	Payload map[string]any         `json:"payload,omitempty"`
}
