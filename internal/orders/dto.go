package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	"github.com/rassdread/homecheff-backend/pkg/types"
)

// Actor identifies who is performing an order mutation.
type Actor struct {
	UserID          uuid.UUID
	Role            enums.UserRole
	SellerProfileID *uuid.UUID
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.UserRoleAdmin
}

// UpdateInput carries the mutable order fields. Nil pointers mean "leave as
// is"; a non-nil Status requests a transition.
type UpdateInput struct {
	OrderID         uuid.UUID
	Status          *enums.OrderStatus
	PickupAddress   *types.Address
	DeliveryAddress *types.Address
	PickupDate      *time.Time
	DeliveryDate    *time.Time
	Notes           *string
}

// CancelInput carries an admin cancellation. RefundAmountCents nil means no
// refund attempt.
type CancelInput struct {
	OrderID           uuid.UUID
	Reason            string
	RefundAmountCents *int64
}

// UpdateResult reports a committed order mutation. SideEffects collects
// everything that failed after the commit; the order state is authoritative
// regardless.
type UpdateResult struct {
	Order       *models.Order
	SideEffects error
}

// CancelResult reports a committed cancellation and the refund outcome.
type CancelResult struct {
	Order         *models.Order
	RefundedCents int64
	RefundErr     error
	SideEffects   error
}

// List is one page of orders.
type List struct {
	Items      []models.Order `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
