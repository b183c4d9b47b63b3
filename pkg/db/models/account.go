package models

import (
	"time"

	"github.com/google/uuid"
)

// Account links a user to an external identity provider login.
type Account struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Provider          string    `gorm:"column:provider;not null;uniqueIndex:idx_account_provider"`
	ProviderAccountID string    `gorm:"column:provider_account_id;not null;uniqueIndex:idx_account_provider"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Session is a persisted login session.
type Session struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	SessionToken string    `gorm:"column:session_token;uniqueIndex;not null"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// VerificationToken is a one-time email verification or password reset token.
type VerificationToken struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Identifier string    `gorm:"column:identifier;not null;index"`
	Token      string    `gorm:"column:token;uniqueIndex;not null"`
	ExpiresAt  time.Time `gorm:"column:expires_at;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// AdminPermission grants a named capability to an admin user.
type AdminPermission struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_admin_permission"`
	Scope     string    `gorm:"column:scope;not null;uniqueIndex:idx_admin_permission"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
