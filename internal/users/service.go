package users

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
	"github.com/rassdread/homecheff-backend/pkg/metrics"
)

// txTimeoutRunner runs a function inside one transaction with its own
// deadline. The cascade gets a longer budget than a normal request.
type txTimeoutRunner interface {
	WithTxTimeout(ctx context.Context, timeout time.Duration, fn func(tx *gorm.DB) error) error
}

// Service performs the admin bulk user deletion.
type Service interface {
	BulkDelete(ctx context.Context, actorID uuid.UUID, userIDs []uuid.UUID) (int64, error)
}

type service struct {
	repo    Repository
	tx      txTimeoutRunner
	timeout time.Duration
	metrics *metrics.OrderMetrics
	logg    *logger.Logger
}

// NewService builds the user deletion service.
func NewService(repo Repository, tx txTimeoutRunner, timeout time.Duration, m *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("cascade timeout must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, timeout: timeout, metrics: m, logg: logg}, nil
}

// BulkDelete removes the given accounts and everything they own in one
// transaction. The whole batch commits or nothing does. The actor cannot
// delete their own account; that is rejected before any write.
func (s *service) BulkDelete(ctx context.Context, actorID uuid.UUID, userIDs []uuid.UUID) (int64, error) {
	if actorID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}
	if len(userIDs) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "at least one user id required")
	}

	ids := make([]uuid.UUID, 0, len(userIDs))
	seen := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id == uuid.Nil {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "user ids must not be empty")
		}
		if id == actorID {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "cannot delete your own account")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	start := time.Now()
	var deleted int64
	err := s.tx.WithTxTimeout(ctx, s.timeout, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.CountExisting(ctx, ids)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if existing != int64(len(ids)) {
			return pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("%d of %d users not found", int64(len(ids))-existing, len(ids)))
		}

		deleted, err = repo.CascadeDelete(ctx, ids)
		if err != nil {
			return err
		}

		return s.writeAudit(ctx, repo, actorID, ids)
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return 0, appErr
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bulk delete users")
	}

	s.metrics.ObserveCascadeDelete(time.Since(start))
	s.logg.Info(s.logg.WithUserID(ctx, actorID.String()),
		fmt.Sprintf("deleted %d users in %s", deleted, time.Since(start)))
	return deleted, nil
}

func (s *service) writeAudit(ctx context.Context, repo Repository, actorID uuid.UUID, ids []uuid.UUID) error {
	deletedIDs := make([]string, len(ids))
	for i, id := range ids {
		deletedIDs[i] = id.String()
	}
	detail, err := json.Marshal(map[string]any{
		"user_ids": deletedIDs,
		"count":    len(ids),
	})
	if err != nil {
		return fmt.Errorf("marshal deletion audit: %w", err)
	}
	if err := repo.CreateAdminAction(ctx, &models.AdminAction{
		AdminUserID: actorID,
		Type:        enums.AdminActionUsersDeleted,
		Detail:      detail,
	}); err != nil {
		return fmt.Errorf("write deletion audit: %w", err)
	}
	return nil
}
