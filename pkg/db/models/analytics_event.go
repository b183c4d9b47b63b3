package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent is an append-only product/page event used for seller stats.
type AnalyticsEvent struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	Name      string     `gorm:"column:name;not null"`
	EntityID  *uuid.UUID `gorm:"column:entity_id;type:uuid"`
	Props     []byte     `gorm:"column:props;type:jsonb"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
