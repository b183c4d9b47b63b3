package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a listing offered by a seller (dish, produce, or design piece).
type Product struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SellerProfileID uuid.UUID `gorm:"column:seller_profile_id;type:uuid;not null"`
	Title           string    `gorm:"column:title;not null"`
	Description     *string   `gorm:"column:description"`
	Category        string    `gorm:"column:category;not null"`
	PriceCents      int       `gorm:"column:price_cents;not null"`
	Stock           int       `gorm:"column:stock;not null;default:0"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true"`

	Images       []ProductImage     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reservations []StockReservation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductImage stores a single listing photo.
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	URL       string    `gorm:"column:url;not null"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// StockReservation holds stock for an in-flight checkout.
type StockReservation struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Qty       int       `gorm:"column:qty;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
