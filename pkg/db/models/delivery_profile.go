package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryProfile marks a user as an available courier.
type DeliveryProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	TransportMode string    `gorm:"column:transport_mode;not null;default:'bike'"`
	MaxRadiusKM   int       `gorm:"column:max_radius_km;not null;default:5"`
	IsAvailable   bool      `gorm:"column:is_available;not null;default:true"`

	Orders []DeliveryOrder `gorm:"foreignKey:DeliveryProfileID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// DeliveryOrder assigns a courier to an order.
type DeliveryOrder struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           uuid.UUID  `gorm:"column:order_id;type:uuid;not null"`
	DeliveryProfileID uuid.UUID  `gorm:"column:delivery_profile_id;type:uuid;not null"`
	Status            string     `gorm:"column:status;not null;default:'assigned'"`
	PickedUpAt        *time.Time `gorm:"column:picked_up_at"`
	DeliveredAt       *time.Time `gorm:"column:delivered_at"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
