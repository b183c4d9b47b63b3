package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rassdread/homecheff-backend/api/responses"
	"github.com/rassdread/homecheff-backend/api/validators"
	internalorders "github.com/rassdread/homecheff-backend/internal/orders"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
	"github.com/rassdread/homecheff-backend/pkg/types"
)

type updateOrderPayload struct {
	Status          *string        `json:"status,omitempty"`
	PickupAddress   *types.Address `json:"pickupAddress,omitempty"`
	DeliveryAddress *types.Address `json:"deliveryAddress,omitempty"`
	PickupDate      *time.Time     `json:"pickupDate,omitempty"`
	DeliveryDate    *time.Time     `json:"deliveryDate,omitempty"`
	Notes           *string        `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type cancelOrderPayload struct {
	Reason       string `json:"reason,omitempty" validate:"omitempty,max=500"`
	RefundAmount *int64 `json:"refundAmount,omitempty"`
}

// UpdateOrder applies a partial order mutation. A status change runs the full
// transition pipeline; the commit succeeds even when side effects fail.
func UpdateOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actor, err := actorFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateOrderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := internalorders.UpdateInput{
			OrderID:         orderID,
			PickupAddress:   payload.PickupAddress,
			DeliveryAddress: payload.DeliveryAddress,
			PickupDate:      payload.PickupDate,
			DeliveryDate:    payload.DeliveryDate,
			Notes:           payload.Notes,
		}
		if payload.Status != nil {
			status := enums.OrderStatus(strings.ToUpper(strings.TrimSpace(*payload.Status)))
			input.Status = &status
		}

		result, err := svc.UpdateStatus(ctx, actor, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"order": result.Order})
	}
}

// CancelOrder cancels an order on behalf of an admin, optionally refunding.
// Refund failures are reported in the response but never fail the cancel.
func CancelOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actor, err := actorFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := cancelOrderPayload{}
		if r.Body != nil && r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		result, err := svc.Cancel(ctx, actor, internalorders.CancelInput{
			OrderID:           orderID,
			Reason:            validators.SanitizeString(payload.Reason, 500),
			RefundAmountCents: payload.RefundAmount,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		data := map[string]any{
			"order":          result.Order,
			"refunded_cents": result.RefundedCents,
		}
		if result.RefundErr != nil {
			data["refund_error"] = result.RefundErr.Error()
		}
		responses.WriteSuccess(w, data)
	}
}

// ListOrders returns the caller's orders. Sellers can request the orders that
// contain their items with view=seller; everyone defaults to their purchases.
func ListOrders(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actor, err := actorFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view := strings.TrimSpace(r.URL.Query().Get("view"))
		switch view {
		case "", "buyer":
			list, err := svc.ListForBuyer(ctx, actor.UserID, params)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, list)
		case "seller":
			if actor.SellerProfileID == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller profile required"))
				return
			}
			list, err := svc.ListForSeller(ctx, *actor.SellerProfileID, params)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, list)
		default:
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "view must be buyer or seller"))
		}
	}
}
