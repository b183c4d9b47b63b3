package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rassdread/homecheff-backend/pkg/enums"
)

// Transaction records the money captured for one seller's share of an order.
// FeeBps is the platform fee rate that applied at capture time.
type Transaction struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID         uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	SellerProfileID uuid.UUID `gorm:"column:seller_profile_id;type:uuid;not null"`
	AmountCents     int       `gorm:"column:amount_cents;not null"`
	FeeBps          int       `gorm:"column:fee_bps;not null"`
	Currency        string    `gorm:"column:currency;not null;default:'eur'"`
	StripePaymentID *string   `gorm:"column:stripe_payment_id"`

	Payouts []Payout `gorm:"foreignKey:TransactionID"`
	Refunds []Refund `gorm:"foreignKey:TransactionID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Payout is the seller-side transfer for a transaction. A nil provider
// reference means the transfer has not been executed yet.
type Payout struct {
	ID               uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TransactionID    uuid.UUID          `gorm:"column:transaction_id;type:uuid;not null"`
	SellerProfileID  uuid.UUID          `gorm:"column:seller_profile_id;type:uuid;not null"`
	AmountCents      int                `gorm:"column:amount_cents;not null"`
	Status           enums.PayoutStatus `gorm:"column:status;not null;default:'pending'"`
	StripeTransferID *string            `gorm:"column:stripe_transfer_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Refund records a refund attempt against a captured transaction.
type Refund struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TransactionID  uuid.UUID `gorm:"column:transaction_id;type:uuid;not null"`
	AmountCents    int       `gorm:"column:amount_cents;not null"`
	StripeRefundID *string   `gorm:"column:stripe_refund_id"`
	Reason         *string   `gorm:"column:reason"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
