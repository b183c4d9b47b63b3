package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/pagination"
)

// Repository defines persistence operations for product reviews.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByOrderItem(ctx context.Context, orderItemID uuid.UUID) (*models.Review, error)
	FindByTokenID(ctx context.Context, tokenID string) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	Save(ctx context.Context, review *models.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID, params pagination.Params) (*List, error)
}
