package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rassdread/homecheff-backend/pkg/enums"
)

// Notification is an in-app notification row. Payload carries type-specific
// context such as the order id, stored as jsonb.
type Notification struct {
	ID      uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID  uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Type    enums.NotificationType `gorm:"column:type;not null"`
	Title   string                 `gorm:"column:title;not null"`
	Body    string                 `gorm:"column:body;not null"`
	Payload []byte                 `gorm:"column:payload;type:jsonb"`
	ReadAt  *time.Time             `gorm:"column:read_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
