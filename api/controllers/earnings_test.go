package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/internal/payouts"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
)

type testPayoutsService struct {
	earningsFn func(ctx context.Context, sellerProfileID uuid.UUID) (*payouts.EarningsSummary, error)
	exportFn   func(ctx context.Context, sellerProfileID uuid.UUID, format payouts.ExportFormat) (*payouts.Export, error)
}

func (s *testPayoutsService) Earnings(ctx context.Context, sellerProfileID uuid.UUID) (*payouts.EarningsSummary, error) {
	if s.earningsFn != nil {
		return s.earningsFn(ctx, sellerProfileID)
	}
	return &payouts.EarningsSummary{SellerProfileID: sellerProfileID}, nil
}

func (s *testPayoutsService) Export(ctx context.Context, sellerProfileID uuid.UUID, format payouts.ExportFormat) (*payouts.Export, error) {
	if s.exportFn != nil {
		return s.exportFn(ctx, sellerProfileID, format)
	}
	return &payouts.Export{Filename: "earnings.csv", ContentType: "text/csv", Data: []byte("header\n")}, nil
}

func (s *testPayoutsService) SellerFeeBps(ctx context.Context, sellerProfileID uuid.UUID) (int, error) {
	return 1200, nil
}

func TestSellerEarningsRequiresProfile(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/seller/earnings", nil)
	req = withActor(req, uuid.New(), enums.UserRoleBuyer, nil)

	resp := httptest.NewRecorder()
	SellerEarnings(&testPayoutsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestSellerEarningsUsesProfileFromContext(t *testing.T) {
	sellerID := uuid.New()
	called := false
	svc := &testPayoutsService{
		earningsFn: func(ctx context.Context, gotSeller uuid.UUID) (*payouts.EarningsSummary, error) {
			called = true
			if gotSeller != sellerID {
				t.Fatalf("unexpected seller %s", gotSeller)
			}
			return &payouts.EarningsSummary{SellerProfileID: gotSeller, PayoutCents: 8800}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/seller/earnings", nil)
	req = withActor(req, uuid.New(), enums.UserRoleSeller, &sellerID)

	resp := httptest.NewRecorder()
	SellerEarnings(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected earnings called")
	}
	if !strings.Contains(resp.Body.String(), "8800") {
		t.Fatalf("expected payout in body, got %s", resp.Body.String())
	}
}

func TestSellerEarningsExportStreamsAttachment(t *testing.T) {
	sellerID := uuid.New()
	svc := &testPayoutsService{
		exportFn: func(ctx context.Context, gotSeller uuid.UUID, format payouts.ExportFormat) (*payouts.Export, error) {
			if format != payouts.ExportFormatCSV {
				t.Fatalf("unexpected format %q", format)
			}
			return &payouts.Export{
				Filename:    "earnings-2026-09.csv",
				ContentType: "text/csv",
				Data:        []byte("transaction_id,order_id\n"),
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/seller/earnings/export?format=csv", nil)
	req = withActor(req, uuid.New(), enums.UserRoleSeller, &sellerID)

	resp := httptest.NewRecorder()
	SellerEarningsExport(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "earnings-2026-09.csv") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !strings.HasPrefix(resp.Body.String(), "transaction_id") {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestSellerEarningsExportRejectsPDF(t *testing.T) {
	sellerID := uuid.New()
	svc := &testPayoutsService{
		exportFn: func(ctx context.Context, gotSeller uuid.UUID, format payouts.ExportFormat) (*payouts.Export, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pdf export is not available, use format=csv")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/seller/earnings/export?format=pdf", nil)
	req = withActor(req, uuid.New(), enums.UserRoleSeller, &sellerID)

	resp := httptest.NewRecorder()
	SellerEarningsExport(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "format=csv") {
		t.Fatalf("expected hint in body, got %s", resp.Body.String())
	}
}
