package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
)

// Repository defines the persistence operations behind admin user deletion.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CountExisting(ctx context.Context, userIDs []uuid.UUID) (int64, error)
	CascadeDelete(ctx context.Context, userIDs []uuid.UUID) (int64, error)
	CreateAdminAction(ctx context.Context, action *models.AdminAction) error
}
