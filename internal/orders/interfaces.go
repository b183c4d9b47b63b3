package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and their audit trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	ListByBuyer(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error)
	ListBySeller(ctx context.Context, sellerProfileID uuid.UUID, params pagination.Params) (*List, error)
	CreateRefund(ctx context.Context, refund *models.Refund) error
	CreateAdminAction(ctx context.Context, action *models.AdminAction) error
}
