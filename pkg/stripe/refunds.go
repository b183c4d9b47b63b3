package stripe

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v84"
)

// RefundParams describes a partial or full refund against a captured payment.
type RefundParams struct {
	PaymentIntentID string
	AmountCents     int64
	Reason          string
}

// RefundResult is the provider's answer for a successful refund call.
type RefundResult struct {
	RefundID    string
	AmountCents int64
}

// Refunder issues refunds. Services take this interface so tests can swap in
// a fake without touching the network.
type Refunder interface {
	Refund(ctx context.Context, params RefundParams) (*RefundResult, error)
}

var errPaymentIntentRequired = errors.New("refund requires a payment intent id")

// Refund creates a refund against the payment intent. A zero amount refunds
// the full remaining balance.
func (c *Client) Refund(ctx context.Context, params RefundParams) (*RefundResult, error) {
	if params.PaymentIntentID == "" {
		return nil, errPaymentIntentRequired
	}

	createParams := &stripe.RefundCreateParams{
		PaymentIntent: stripe.String(params.PaymentIntentID),
	}
	if params.AmountCents > 0 {
		createParams.Amount = stripe.Int64(params.AmountCents)
	}
	if params.Reason != "" {
		createParams.Reason = stripe.String(params.Reason)
	}

	ref, err := c.api.V1Refunds.Create(ctx, createParams)
	if err != nil {
		return nil, err
	}
	return &RefundResult{RefundID: ref.ID, AmountCents: ref.Amount}, nil
}
