package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rassdread/homecheff-backend/pkg/enums"
)

// AdminAction is the audit trail for privileged operations. Detail is a
// free-form jsonb blob describing what happened, including failures.
type AdminAction struct {
	ID          uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AdminUserID uuid.UUID             `gorm:"column:admin_user_id;type:uuid;not null;index"`
	Type        enums.AdminActionType `gorm:"column:type;not null"`
	TargetID    *uuid.UUID            `gorm:"column:target_id;type:uuid"`
	Detail      []byte                `gorm:"column:detail;type:jsonb"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
