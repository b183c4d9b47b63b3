package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rassdread/homecheff-backend/pkg/enums"
)

// Conversation is a buyer/seller chat thread, usually tied to an order.
type Conversation struct {
	ID      uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID *uuid.UUID `gorm:"column:order_id;type:uuid;uniqueIndex"`

	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	Messages     []Message                 `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type ConversationParticipant struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID  `gorm:"column:conversation_id;type:uuid;not null;uniqueIndex:idx_conversation_user"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_conversation_user"`
	LastReadAt     *time.Time `gorm:"column:last_read_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// Message is a chat message. System messages have no sender and carry
// platform-generated text such as order status updates.
type Message struct {
	ID             uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID         `gorm:"column:conversation_id;type:uuid;not null"`
	SenderID       *uuid.UUID        `gorm:"column:sender_id;type:uuid"`
	Type           enums.MessageType `gorm:"column:type;not null;default:'text'"`
	Body           string            `gorm:"column:body;not null"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// ConversationKey holds the conversation's content key, sealed with the
// system key. Ciphertext is base64 of nonce||AES-GCM output.
type ConversationKey struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID `gorm:"column:conversation_id;type:uuid;not null;uniqueIndex"`
	SealedKey      string    `gorm:"column:sealed_key;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
