package payouts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
)

// Repository defines persistence operations for seller earnings data.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListSellerTransactions(ctx context.Context, sellerProfileID uuid.UUID) ([]models.Transaction, error)
	ListCompletedPayoutTransactionIDs(ctx context.Context, sellerProfileID uuid.UUID) ([]uuid.UUID, error)
	FindActiveSubscription(ctx context.Context, sellerProfileID uuid.UUID, now time.Time) (*models.Subscription, error)
	CreatePayout(ctx context.Context, payout *models.Payout) (*models.Payout, error)
}
