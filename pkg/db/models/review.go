package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer's review of a purchased product. A row is created when
// the order is delivered and filled in when the buyer submits; SubmittedAt
// nil means the request is still open.
type Review struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderItemID uuid.UUID  `gorm:"column:order_item_id;type:uuid;not null;uniqueIndex"`
	ProductID   uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	BuyerID     uuid.UUID  `gorm:"column:buyer_id;type:uuid;not null"`
	Rating      *int       `gorm:"column:rating"`
	Comment     *string    `gorm:"column:comment"`
	TokenID     string     `gorm:"column:token_id;not null"`
	ExpiresAt   time.Time  `gorm:"column:expires_at;not null"`
	SubmittedAt *time.Time `gorm:"column:submitted_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Open reports whether the review can still be submitted at the given time.
func (r *Review) Open(now time.Time) bool {
	return r.SubmittedAt == nil && now.Before(r.ExpiresAt)
}
