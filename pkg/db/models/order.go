package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	"github.com/rassdread/homecheff-backend/pkg/types"
)

// Order is a buyer's purchase. Items may come from multiple sellers; status
// applies to the order as a whole.
type Order struct {
	ID              uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string             `gorm:"column:order_number;uniqueIndex;not null"`
	UserID          uuid.UUID          `gorm:"column:user_id;type:uuid;not null"`
	Status          enums.OrderStatus  `gorm:"column:status;not null;default:'PENDING'"`
	DeliveryMode    enums.DeliveryMode `gorm:"column:delivery_mode;not null"`
	PickupAddress   *types.Address     `gorm:"column:pickup_address;type:jsonb"`
	DeliveryAddress *types.Address     `gorm:"column:delivery_address;type:jsonb"`
	PickupDate      *time.Time         `gorm:"column:pickup_date"`
	DeliveryDate    *time.Time         `gorm:"column:delivery_date"`
	Notes           *string            `gorm:"column:notes"`
	StripeSessionID *string            `gorm:"column:stripe_session_id"`
	TotalCents      int                `gorm:"column:total_cents;not null"`

	User         *User         `gorm:"foreignKey:UserID"`
	Items        []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Transactions []Transaction `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots a product at purchase time. Price and title are copied
// so later edits to the listing never change what the buyer paid for.
type OrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID         uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	SellerProfileID uuid.UUID `gorm:"column:seller_profile_id;type:uuid;not null"`
	Title           string    `gorm:"column:title;not null"`
	Qty             int       `gorm:"column:qty;not null"`
	PriceCents      int       `gorm:"column:price_cents;not null"`

	Product       *Product       `gorm:"foreignKey:ProductID"`
	SellerProfile *SellerProfile `gorm:"foreignKey:SellerProfileID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
