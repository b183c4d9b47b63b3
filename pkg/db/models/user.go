package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	Username     string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Name         string         `gorm:"column:name;not null"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:'BUYER'"`
	Bio          *string        `gorm:"column:bio"`
	Image        *string        `gorm:"column:image"`
	Locale       string         `gorm:"column:locale;not null;default:'nl'"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`

	SellerProfile   *SellerProfile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	DeliveryProfile *DeliveryProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
