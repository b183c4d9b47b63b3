package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a product saved by a user.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_favorite_user_product"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_favorite_user_product"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Follow links a user to a seller they follow.
type Follow struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_follow_user_seller"`
	SellerProfileID uuid.UUID `gorm:"column:seller_profile_id;type:uuid;not null;uniqueIndex:idx_follow_user_seller"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}
