package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/api/middleware"
	"github.com/rassdread/homecheff-backend/api/responses"
	"github.com/rassdread/homecheff-backend/internal/payouts"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
)

func sellerProfileIDFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.SellerProfileIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "seller profile required")
	}
	sellerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid seller profile id")
	}
	return sellerID, nil
}

// SellerEarnings returns the authenticated seller's earnings summary.
func SellerEarnings(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payouts service unavailable"))
			return
		}

		sellerID, err := sellerProfileIDFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := svc.Earnings(ctx, sellerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// SellerEarningsExport streams the seller's earnings as a downloadable file.
func SellerEarningsExport(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payouts service unavailable"))
			return
		}

		sellerID, err := sellerProfileIDFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		format := payouts.ExportFormat(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))))
		export, err := svc.Export(ctx, sellerID, format)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(export.Data); err != nil && logg != nil {
			logg.Error(ctx, "earnings.export.write", err)
		}
	}
}
