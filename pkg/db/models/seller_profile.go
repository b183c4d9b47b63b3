package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/pkg/enums"
)

// SellerProfile holds the selling identity of a user (chef, grower, or designer).
type SellerProfile struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID            `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	DisplayName string               `gorm:"column:display_name;not null"`
	Category    enums.SellerCategory `gorm:"column:category;type:text;not null;default:'INDIVIDUAL'"`
	KvkNumber   *string              `gorm:"column:kvk_number"`
	VatNumber   *string              `gorm:"column:vat_number"`
	// StripeAccountID references the connected Stripe Express account.
	StripeAccountID *string `gorm:"column:stripe_account_id"`

	Subscriptions   []Subscription   `gorm:"foreignKey:SellerProfileID;constraint:OnDelete:CASCADE"`
	Products        []Product        `gorm:"foreignKey:SellerProfileID;constraint:OnDelete:CASCADE"`
	WorkplacePhotos []WorkplacePhoto `gorm:"foreignKey:SellerProfileID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// WorkplacePhoto is a photo of the seller's kitchen, garden, or studio.
type WorkplacePhoto struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SellerProfileID uuid.UUID `gorm:"column:seller_profile_id;type:uuid;not null"`
	URL             string    `gorm:"column:url;not null"`
	SortOrder       int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}
