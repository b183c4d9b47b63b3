package payouts

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
	"github.com/rassdread/homecheff-backend/pkg/stripe"
)

// Service exposes seller earnings aggregation and export.
type Service interface {
	Earnings(ctx context.Context, sellerProfileID uuid.UUID) (*EarningsSummary, error)
	Export(ctx context.Context, sellerProfileID uuid.UUID, format ExportFormat) (*Export, error)
	SellerFeeBps(ctx context.Context, sellerProfileID uuid.UUID) (int, error)
}

type service struct {
	repo          Repository
	logg          *logger.Logger
	mode          stripe.Mode
	defaultFeeBps int
}

// NewService builds the earnings service. The Stripe mode is fixed at process
// start; every aggregate filters to transactions from that mode so test and
// live money never mix in one total.
func NewService(repo Repository, logg *logger.Logger, mode stripe.Mode, defaultFeeBps int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payouts repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if mode == stripe.ModeUnknown {
		return nil, fmt.Errorf("stripe mode required")
	}
	return &service{
		repo:          repo,
		logg:          logg,
		mode:          mode,
		defaultFeeBps: defaultFeeBps,
	}, nil
}

// Earnings re-derives every amount from gross and the seller's current fee
// rate. The bps cached on the transaction row is capture-time history and is
// never summed, so totals follow subscription tier changes. Pending payout is
// the net of mode-matching transactions without a completed payout transfer,
// not the cached amount on payout rows.
func (s *service) Earnings(ctx context.Context, sellerProfileID uuid.UUID) (*EarningsSummary, error) {
	if sellerProfileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller profile id required")
	}

	feeBps, err := s.resolveFeeBps(ctx, sellerProfileID)
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.ListSellerTransactions(ctx, sellerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seller transactions")
	}

	paidTxIDs, err := s.repo.ListCompletedPayoutTransactionIDs(ctx, sellerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list completed payouts")
	}
	paidOut := make(map[uuid.UUID]struct{}, len(paidTxIDs))
	for _, id := range paidTxIDs {
		paidOut[id] = struct{}{}
	}

	summary := &EarningsSummary{
		SellerProfileID: sellerProfileID,
		Lines:           []EarningsLine{},
	}
	for _, tx := range txs {
		ref := ""
		if tx.StripePaymentID != nil {
			ref = *tx.StripePaymentID
		}
		if !stripe.MatchesMode(ref, s.mode) {
			continue
		}

		breakdown, err := CalculateFees(tx.AmountCents, feeBps)
		if err != nil {
			s.logg.Error(s.logg.WithSellerID(ctx, sellerProfileID.String()), "skipping transaction with invalid amounts", err)
			continue
		}

		summary.GrossCents += breakdown.GrossCents
		summary.PlatformFeeCents += breakdown.PlatformFeeCents
		summary.StripeFeeCents += breakdown.StripeFeeCents
		summary.PayoutCents += breakdown.SellerPayoutCents
		summary.TransactionCount++
		if _, ok := paidOut[tx.ID]; !ok {
			summary.PendingPayoutCents += breakdown.SellerPayoutCents
		}
		summary.Lines = append(summary.Lines, EarningsLine{
			TransactionID: tx.ID,
			OrderID:       tx.OrderID,
			Breakdown:     breakdown,
			Currency:      tx.Currency,
			CreatedAt:     tx.CreatedAt,
		})
	}

	return summary, nil
}

func (s *service) Export(ctx context.Context, sellerProfileID uuid.UUID, format ExportFormat) (*Export, error) {
	switch format {
	case ExportFormatCSV, "":
	case ExportFormatPDF:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pdf export is not available, use format=csv")
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown export format %q", format))
	}

	summary, err := s.Earnings(ctx, sellerProfileID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"transaction_id", "order_id", "created_at", "currency", "gross_cents", "platform_fee_bps", "platform_fee_cents", "stripe_fee_cents", "seller_payout_cents"}
	if err := w.Write(header); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	for _, line := range summary.Lines {
		record := []string{
			line.TransactionID.String(),
			line.OrderID.String(),
			line.CreatedAt.UTC().Format(time.RFC3339),
			line.Currency,
			strconv.Itoa(line.Breakdown.GrossCents),
			strconv.Itoa(line.Breakdown.FeeBps),
			strconv.Itoa(line.Breakdown.PlatformFeeCents),
			strconv.Itoa(line.Breakdown.StripeFeeCents),
			strconv.Itoa(line.Breakdown.SellerPayoutCents),
		}
		if err := w.Write(record); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv record")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}

	return &Export{
		Filename:    fmt.Sprintf("earnings-%s.csv", time.Now().UTC().Format("2006-01-02")),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

// SellerFeeBps resolves the platform fee rate in effect for a seller right now.
func (s *service) SellerFeeBps(ctx context.Context, sellerProfileID uuid.UUID) (int, error) {
	if sellerProfileID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "seller profile id required")
	}
	return s.resolveFeeBps(ctx, sellerProfileID)
}

func (s *service) resolveFeeBps(ctx context.Context, sellerProfileID uuid.UUID) (int, error) {
	sub, err := s.repo.FindActiveSubscription(ctx, sellerProfileID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResolveFeeBps(nil, s.defaultFeeBps), nil
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}
	return ResolveFeeBps(&sub.FeeBps, s.defaultFeeBps), nil
}
