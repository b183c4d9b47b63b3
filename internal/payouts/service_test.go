package payouts

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
	"github.com/rassdread/homecheff-backend/pkg/stripe"
)

type fakeRepo struct {
	transactions  []models.Transaction
	payouts       []models.Payout
	completedTxID []uuid.UUID
	subscription  *models.Subscription
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) ListSellerTransactions(ctx context.Context, sellerProfileID uuid.UUID) ([]models.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeRepo) ListCompletedPayoutTransactionIDs(ctx context.Context, sellerProfileID uuid.UUID) ([]uuid.UUID, error) {
	return f.completedTxID, nil
}

func (f *fakeRepo) FindActiveSubscription(ctx context.Context, sellerProfileID uuid.UUID, now time.Time) (*models.Subscription, error) {
	if f.subscription == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.subscription, nil
}

func (f *fakeRepo) CreatePayout(ctx context.Context, payout *models.Payout) (*models.Payout, error) {
	f.payouts = append(f.payouts, *payout)
	return payout, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T, repo Repository, mode stripe.Mode) Service {
	t.Helper()
	svc, err := NewService(repo, testLogger(), mode, 1200)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestEarningsFiltersByMode(t *testing.T) {
	sellerID := uuid.New()
	repo := &fakeRepo{
		transactions: []models.Transaction{
			{ID: uuid.New(), OrderID: uuid.New(), AmountCents: 10000, FeeBps: 1200, Currency: "eur", StripePaymentID: strPtr("pi_3Live")},
			{ID: uuid.New(), OrderID: uuid.New(), AmountCents: 5000, FeeBps: 1200, Currency: "eur", StripePaymentID: strPtr("pi_test_abc")},
			{ID: uuid.New(), OrderID: uuid.New(), AmountCents: 7000, FeeBps: 1200, Currency: "eur", StripePaymentID: nil},
		},
	}
	svc := newTestService(t, repo, stripe.ModeLive)

	summary, err := svc.Earnings(context.Background(), sellerID)
	if err != nil {
		t.Fatalf("Earnings returned error: %v", err)
	}

	if summary.TransactionCount != 1 {
		t.Fatalf("expected only the live transaction, got %d", summary.TransactionCount)
	}
	if summary.GrossCents != 10000 {
		t.Fatalf("expected gross 10000, got %d", summary.GrossCents)
	}
	if summary.PlatformFeeCents != 1200 {
		t.Fatalf("expected platform fee 1200, got %d", summary.PlatformFeeCents)
	}
	if summary.PayoutCents != 8800 {
		t.Fatalf("expected payout 8800, got %d", summary.PayoutCents)
	}
	if summary.PendingPayoutCents != 8800 {
		t.Fatalf("expected pending payout 8800, got %d", summary.PendingPayoutCents)
	}
}

func TestEarningsPendingExcludesPaidOutTransactions(t *testing.T) {
	paidTx := uuid.New()
	openTx := uuid.New()
	repo := &fakeRepo{
		transactions: []models.Transaction{
			{ID: paidTx, OrderID: uuid.New(), AmountCents: 10000, FeeBps: 1200, Currency: "eur", StripePaymentID: strPtr("pi_3Live")},
			{ID: openTx, OrderID: uuid.New(), AmountCents: 5000, FeeBps: 1200, Currency: "eur", StripePaymentID: strPtr("pi_3LiveB")},
		},
		completedTxID: []uuid.UUID{paidTx},
	}
	svc := newTestService(t, repo, stripe.ModeLive)

	summary, err := svc.Earnings(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Earnings returned error: %v", err)
	}
	if summary.PayoutCents != 13200 {
		t.Fatalf("expected total payout 13200, got %d", summary.PayoutCents)
	}
	if summary.PendingPayoutCents != 4400 {
		t.Fatalf("expected pending payout for the unpaid transaction only, got %d", summary.PendingPayoutCents)
	}
}

func TestEarningsUsesCurrentSubscriptionRate(t *testing.T) {
	repo := &fakeRepo{
		transactions: []models.Transaction{
			{ID: uuid.New(), OrderID: uuid.New(), AmountCents: 10000, FeeBps: 1200, Currency: "eur", StripePaymentID: strPtr("pi_3Live")},
		},
		subscription: &models.Subscription{FeeBps: 400},
	}
	svc := newTestService(t, repo, stripe.ModeLive)

	summary, err := svc.Earnings(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Earnings returned error: %v", err)
	}
	if summary.PlatformFeeCents != 400 || summary.PayoutCents != 9600 {
		t.Fatalf("expected current subscription rate, got %+v", summary)
	}
	if summary.PendingPayoutCents != 9600 {
		t.Fatalf("expected pending payout at current rate, got %d", summary.PendingPayoutCents)
	}
}

func TestEarningsTestModeSeesOnlyTestRows(t *testing.T) {
	repo := &fakeRepo{
		transactions: []models.Transaction{
			{ID: uuid.New(), OrderID: uuid.New(), AmountCents: 10000, FeeBps: 400, Currency: "eur", StripePaymentID: strPtr("pi_test_abc")},
			{ID: uuid.New(), OrderID: uuid.New(), AmountCents: 9999, FeeBps: 400, Currency: "eur", StripePaymentID: strPtr("pi_3Live")},
		},
		subscription: &models.Subscription{FeeBps: 400},
	}
	svc := newTestService(t, repo, stripe.ModeTest)

	summary, err := svc.Earnings(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Earnings returned error: %v", err)
	}
	if summary.TransactionCount != 1 || summary.GrossCents != 10000 {
		t.Fatalf("expected only test-mode transaction, got %+v", summary)
	}
	if summary.PlatformFeeCents != 400 || summary.PayoutCents != 9600 {
		t.Fatalf("expected subscription rate breakdown, got %+v", summary)
	}
}

func TestExportCSV(t *testing.T) {
	txID := uuid.New()
	repo := &fakeRepo{
		transactions: []models.Transaction{
			{ID: txID, OrderID: uuid.New(), AmountCents: 10000, FeeBps: 1200, Currency: "eur", StripePaymentID: strPtr("pi_3Live")},
		},
	}
	svc := newTestService(t, repo, stripe.ModeLive)

	export, err := svc.Export(context.Background(), uuid.New(), ExportFormatCSV)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if export.ContentType != "text/csv" {
		t.Fatalf("unexpected content type %q", export.ContentType)
	}
	if !strings.HasSuffix(export.Filename, ".csv") {
		t.Fatalf("unexpected filename %q", export.Filename)
	}

	records, err := csv.NewReader(bytes.NewReader(export.Data)).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one record, got %d rows", len(records))
	}
	if records[0][0] != "transaction_id" {
		t.Fatalf("unexpected header %v", records[0])
	}
	if records[1][0] != txID.String() {
		t.Fatalf("expected transaction %s in export, got %s", txID, records[1][0])
	}
	if records[1][6] != "1200" || records[1][8] != "8800" {
		t.Fatalf("unexpected fee columns in %v", records[1])
	}
}

func TestExportRejectsPDF(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, stripe.ModeLive)

	_, err := svc.Export(context.Background(), uuid.New(), ExportFormatPDF)
	if err == nil {
		t.Fatal("expected error for pdf export")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSellerFeeBps(t *testing.T) {
	repo := &fakeRepo{subscription: &models.Subscription{FeeBps: 400}}
	svc := newTestService(t, repo, stripe.ModeLive)

	bps, err := svc.SellerFeeBps(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("SellerFeeBps returned error: %v", err)
	}
	if bps != 400 {
		t.Fatalf("expected subscription rate 400, got %d", bps)
	}

	svc = newTestService(t, &fakeRepo{}, stripe.ModeLive)
	bps, err = svc.SellerFeeBps(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("SellerFeeBps returned error: %v", err)
	}
	if bps != 1200 {
		t.Fatalf("expected default rate 1200, got %d", bps)
	}
}
