package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/internal/notifications"
	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
	"github.com/rassdread/homecheff-backend/pkg/metrics"
	"github.com/rassdread/homecheff-backend/pkg/pagination"
	"github.com/rassdread/homecheff-backend/pkg/stripe"
)

// statusRank orders the delivery pipeline. Transitions must move forward;
// CANCELLED is reachable only through Cancel.
var statusRank = map[enums.OrderStatus]int{
	enums.OrderStatusPending:    0,
	enums.OrderStatusConfirmed:  1,
	enums.OrderStatusProcessing: 2,
	enums.OrderStatusShipped:    3,
	enums.OrderStatusDelivered:  4,
}

// txRunner runs a function inside one database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// chatPoster is the slice of the chat service used for order system messages.
type chatPoster interface {
	PostSystemMessage(ctx context.Context, orderID uuid.UUID, participantIDs []uuid.UUID, body string) error
}

// notifier is the slice of the notification service used for buyer updates.
type notifier interface {
	Notify(ctx context.Context, input notifications.NotifyInput) error
}

// reviewRequester issues review requests when an order is delivered.
type reviewRequester interface {
	RequestForOrder(ctx context.Context, order *models.Order, buyer *models.User) error
}

// Service drives the order status pipeline and admin cancellation.
type Service interface {
	UpdateStatus(ctx context.Context, actor Actor, input UpdateInput) (*UpdateResult, error)
	Cancel(ctx context.Context, actor Actor, input CancelInput) (*CancelResult, error)
	ListForBuyer(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error)
	ListForSeller(ctx context.Context, sellerProfileID uuid.UUID, params pagination.Params) (*List, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	chat     chatPoster
	notify   notifier
	reviews  reviewRequester
	refunder stripe.Refunder
	metrics  *metrics.OrderMetrics
	logg     *logger.Logger
}

// NewService builds the order service. The refunder may be nil when payments
// are disabled; cancellations then skip the refund attempt. Metrics may be
// nil in tests.
func NewService(
	repo Repository,
	tx txRunner,
	chat chatPoster,
	notify notifier,
	reviews reviewRequester,
	refunder stripe.Refunder,
	m *metrics.OrderMetrics,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if chat == nil {
		return nil, fmt.Errorf("chat poster required")
	}
	if notify == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if reviews == nil {
		return nil, fmt.Errorf("review requester required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		chat:     chat,
		notify:   notify,
		reviews:  reviews,
		refunder: refunder,
		metrics:  m,
		logg:     logg,
	}, nil
}

// UpdateStatus applies the requested field changes and commits them before
// any side effect runs. Side effect failures are collected on the result and
// never undo the committed row.
func (s *service) UpdateStatus(ctx context.Context, actor Actor, input UpdateInput) (*UpdateResult, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.loadOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeUpdate(actor, order); err != nil {
		return nil, err
	}

	statusChanged := false
	if input.Status != nil {
		if err := validateTransition(order.Status, *input.Status); err != nil {
			return nil, err
		}
		order.Status = *input.Status
		statusChanged = true
	}
	if input.PickupAddress != nil {
		order.PickupAddress = input.PickupAddress
	}
	if input.DeliveryAddress != nil {
		order.DeliveryAddress = input.DeliveryAddress
	}
	if input.PickupDate != nil {
		order.PickupDate = input.PickupDate
	}
	if input.DeliveryDate != nil {
		order.DeliveryDate = input.DeliveryDate
	}
	if input.Notes != nil {
		order.Notes = input.Notes
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Save(ctx, order)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
	}

	result := &UpdateResult{Order: order}
	if statusChanged {
		s.metrics.IncTransition(order.Status.String())
		result.SideEffects = s.fanOutStatusChange(ctx, order)
	}
	return result, nil
}

// Cancel sets the order to CANCELLED, attempts the optional refund, and
// always writes the audit record. Refund failures are logged and swallowed;
// the cancellation stands.
func (s *service) Cancel(ctx context.Context, actor Actor, input CancelInput) (*CancelResult, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only admins can cancel orders")
	}
	if input.RefundAmountCents != nil && *input.RefundAmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "refund amount must be positive")
	}

	order, err := s.loadOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in status %s cannot be cancelled", order.Status))
	}

	order.Status = enums.OrderStatusCancelled
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Save(ctx, order)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cancelled order")
	}

	s.metrics.IncTransition(order.Status.String())
	s.metrics.IncCancellation()

	result := &CancelResult{Order: order}
	if input.RefundAmountCents != nil && order.StripeSessionID != nil {
		result.RefundedCents, result.RefundErr = s.refundOrder(ctx, order, *input.RefundAmountCents, input.Reason)
		if result.RefundErr != nil {
			s.logg.Error(s.orderCtx(ctx, order), "order refund failed", result.RefundErr)
			s.metrics.IncSideEffectFailure("refund")
		}
	}

	s.writeCancellationAudit(ctx, actor, order, input, result)
	result.SideEffects = s.fanOutStatusChange(ctx, order)
	return result, nil
}

func (s *service) ListForBuyer(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	list, err := s.repo.ListByBuyer(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list buyer orders")
	}
	return list, nil
}

func (s *service) ListForSeller(ctx context.Context, sellerProfileID uuid.UUID, params pagination.Params) (*List, error) {
	if sellerProfileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller profile id required")
	}
	list, err := s.repo.ListBySeller(ctx, sellerProfileID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seller orders")
	}
	return list, nil
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order")
	}
	return order, nil
}

func (s *service) authorizeUpdate(actor Actor, order *models.Order) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.SellerProfileID != nil {
		for _, item := range order.Items {
			if item.SellerProfileID == *actor.SellerProfileID {
				return nil
			}
		}
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "not a seller on this order")
}

func validateTransition(from, to enums.OrderStatus) error {
	if !to.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", to))
	}
	if to == enums.OrderStatusCancelled {
		return pkgerrors.New(pkgerrors.CodeValidation, "cancellation goes through the cancel operation")
	}
	if from.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in status %s cannot change status", from))
	}
	if statusRank[to] <= statusRank[from] {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", from, to))
	}
	return nil
}

// fanOutStatusChange runs the post-commit side effects. Each effect is
// isolated: a failure is logged, counted and collected, never propagated.
func (s *service) fanOutStatusChange(ctx context.Context, order *models.Order) error {
	ctx = s.orderCtx(ctx, order)

	var errs error
	if err := s.chat.PostSystemMessage(ctx, order.ID, s.participantIDs(order),
		systemMessageCopy(order.Status, order.OrderNumber)); err != nil {
		s.logg.Error(ctx, "order chat message failed", err)
		s.metrics.IncSideEffectFailure("chat_message")
		errs = multierr.Append(errs, fmt.Errorf("chat message: %w", err))
	}

	copyText := buyerCopy(order.Status, order.OrderNumber)
	if err := s.notify.Notify(ctx, notifications.NotifyInput{
		UserID: order.UserID,
		Type:   enums.NotificationTypeOrderUpdate,
		Title:  copyText.Title,
		Body:   copyText.Body,
		Payload: map[string]any{
			"order_id": order.ID.String(),
			"status":   order.Status.String(),
		},
	}); err != nil {
		s.logg.Error(ctx, "order notification failed", err)
		s.metrics.IncSideEffectFailure("buyer_notification")
		errs = multierr.Append(errs, fmt.Errorf("buyer notification: %w", err))
	}

	if order.Status == enums.OrderStatusDelivered {
		if err := s.reviews.RequestForOrder(ctx, order, order.User); err != nil {
			s.logg.Error(ctx, "review requests failed", err)
			s.metrics.IncSideEffectFailure("review_requests")
			errs = multierr.Append(errs, fmt.Errorf("review requests: %w", err))
		}
	}
	return errs
}

// participantIDs collects the buyer and every seller user on the order for
// the conversation created on first contact.
func (s *service) participantIDs(order *models.Order) []uuid.UUID {
	ids := []uuid.UUID{order.UserID}
	for _, item := range order.Items {
		if item.SellerProfile != nil {
			ids = append(ids, item.SellerProfile.UserID)
		}
	}
	return ids
}

// refundOrder distributes the requested amount across the order's captured
// transactions, one provider call and one Refund row per transaction.
func (s *service) refundOrder(ctx context.Context, order *models.Order, amountCents int64, reason string) (int64, error) {
	if s.refunder == nil {
		return 0, fmt.Errorf("refunds are not configured")
	}

	remaining := amountCents
	var refunded int64
	var errs error
	for i := range order.Transactions {
		if remaining <= 0 {
			break
		}
		transaction := &order.Transactions[i]
		if transaction.StripePaymentID == nil {
			continue
		}

		amount := remaining
		if captured := int64(transaction.AmountCents); amount > captured {
			amount = captured
		}

		result, err := s.refunder.Refund(ctx, stripe.RefundParams{
			PaymentIntentID: *transaction.StripePaymentID,
			AmountCents:     amount,
			Reason:          reason,
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("transaction %s: %w", transaction.ID, err))
			continue
		}

		row := &models.Refund{
			TransactionID: transaction.ID,
			AmountCents:   int(result.AmountCents),
		}
		if result.RefundID != "" {
			refundID := result.RefundID
			row.StripeRefundID = &refundID
		}
		if reason != "" {
			r := reason
			row.Reason = &r
		}
		if err := s.repo.CreateRefund(ctx, row); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("record refund for transaction %s: %w", transaction.ID, err))
		}

		refunded += result.AmountCents
		remaining -= result.AmountCents
	}
	return refunded, errs
}

// writeCancellationAudit records the cancellation and its refund outcome.
// The audit write itself is best-effort against a committed cancellation,
// but a failure here is loud in the logs.
func (s *service) writeCancellationAudit(ctx context.Context, actor Actor, order *models.Order, input CancelInput, result *CancelResult) {
	detail := map[string]any{
		"order_number": order.OrderNumber,
		"reason":       input.Reason,
	}
	if input.RefundAmountCents != nil {
		detail["refund_requested_cents"] = *input.RefundAmountCents
		detail["refunded_cents"] = result.RefundedCents
		if result.RefundErr != nil {
			detail["refund_error"] = result.RefundErr.Error()
		}
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		s.logg.Error(s.orderCtx(ctx, order), "marshal cancellation audit", err)
		raw = nil
	}

	orderID := order.ID
	if err := s.repo.CreateAdminAction(ctx, &models.AdminAction{
		AdminUserID: actor.UserID,
		Type:        enums.AdminActionOrderCancelled,
		TargetID:    &orderID,
		Detail:      raw,
	}); err != nil {
		s.logg.Error(s.orderCtx(ctx, order), "write cancellation audit", err)
	}
}

func (s *service) orderCtx(ctx context.Context, order *models.Order) context.Context {
	return s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID.String(),
		"status":   order.Status.String(),
	})
}
