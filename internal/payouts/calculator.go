package payouts

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
)

const (
	// DefaultPlatformFeeBps applies to individual sellers without an active
	// subscription: 12%.
	DefaultPlatformFeeBps = 1200

	// Stripe's published EU card rate. The Stripe fee is shown to sellers for
	// transparency only; the platform settles it with Stripe separately and
	// it is never subtracted from the seller payout.
	stripeFeePercent    = "1.4"
	stripeFeeFixedCents = 25

	maxFeeBps = 10000
)

// FeeBreakdown splits an order's gross amount into its money components.
// All values are in euro cents.
type FeeBreakdown struct {
	GrossCents        int `json:"gross_cents"`
	StripeFeeCents    int `json:"stripe_fee_cents"`
	PlatformFeeCents  int `json:"platform_fee_cents"`
	SellerPayoutCents int `json:"seller_payout_cents"`
	FeeBps            int `json:"fee_bps"`
}

// CalculateFees computes the fee breakdown for a gross amount at the given
// platform fee rate. Rounding is half-up to the nearest cent.
func CalculateFees(grossCents int, feeBps int) (FeeBreakdown, error) {
	if grossCents < 0 {
		return FeeBreakdown{}, pkgerrors.New(pkgerrors.CodeValidation, "gross amount cannot be negative")
	}
	if feeBps < 0 || feeBps > maxFeeBps {
		return FeeBreakdown{}, pkgerrors.New(pkgerrors.CodeValidation, "fee rate out of range")
	}

	gross := decimal.NewFromInt(int64(grossCents))

	platformFee := gross.
		Mul(decimal.NewFromInt(int64(feeBps))).
		Div(decimal.NewFromInt(maxFeeBps)).
		Round(0)

	stripeFee := gross.
		Mul(decimal.RequireFromString(stripeFeePercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		Add(decimal.NewFromInt(stripeFeeFixedCents))
	if grossCents == 0 {
		stripeFee = decimal.Zero
	}

	platformFeeCents := int(platformFee.IntPart())
	return FeeBreakdown{
		GrossCents:        grossCents,
		StripeFeeCents:    int(stripeFee.IntPart()),
		PlatformFeeCents:  platformFeeCents,
		SellerPayoutCents: grossCents - platformFeeCents,
		FeeBps:            feeBps,
	}, nil
}

// ResolveFeeBps returns the subscription's configured rate when one is
// active, falling back to the platform default.
func ResolveFeeBps(subscriptionBps *int, defaultBps int) int {
	if subscriptionBps != nil && *subscriptionBps >= 0 && *subscriptionBps <= maxFeeBps {
		return *subscriptionBps
	}
	if defaultBps <= 0 || defaultBps > maxFeeBps {
		return DefaultPlatformFeeBps
	}
	return defaultBps
}
