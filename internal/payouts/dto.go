package payouts

import (
	"time"

	"github.com/google/uuid"
)

// EarningsLine is one transaction's contribution to the seller's earnings,
// with fees recomputed from the rate currently in effect for the seller.
type EarningsLine struct {
	TransactionID uuid.UUID    `json:"transaction_id"`
	OrderID       uuid.UUID    `json:"order_id"`
	Breakdown     FeeBreakdown `json:"breakdown"`
	Currency      string       `json:"currency"`
	CreatedAt     time.Time    `json:"created_at"`
}

// EarningsSummary aggregates a seller's mode-consistent transactions.
type EarningsSummary struct {
	SellerProfileID    uuid.UUID      `json:"seller_profile_id"`
	GrossCents         int            `json:"gross_cents"`
	PlatformFeeCents   int            `json:"platform_fee_cents"`
	StripeFeeCents     int            `json:"stripe_fee_cents"`
	PayoutCents        int            `json:"payout_cents"`
	PendingPayoutCents int            `json:"pending_payout_cents"`
	TransactionCount   int            `json:"transaction_count"`
	Lines              []EarningsLine `json:"lines"`
}

// ExportFormat is the requested earnings export encoding.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// Export is a rendered earnings report ready to stream to the client.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}
