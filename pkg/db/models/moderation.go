package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a user-filed moderation report against another user or listing.
type Report struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ReporterID     uuid.UUID  `gorm:"column:reporter_id;type:uuid;not null"`
	TargetUserID   *uuid.UUID `gorm:"column:target_user_id;type:uuid"`
	ProductID      *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Reason         string     `gorm:"column:reason;not null"`
	Detail         *string    `gorm:"column:detail"`
	ResolvedAt     *time.Time `gorm:"column:resolved_at"`
	ResolvedByID   *uuid.UUID `gorm:"column:resolved_by_id;type:uuid"`
	ResolutionNote *string    `gorm:"column:resolution_note"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
