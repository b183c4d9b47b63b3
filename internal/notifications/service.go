package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
	"github.com/rassdread/homecheff-backend/pkg/pagination"
)

// pushPublisher is the pub/sub surface used for live delivery.
type pushPublisher interface {
	Publish(ctx context.Context, channel string, payload any) error
	PushChannel(userID string) string
}

// Service persists in-app notifications and pushes them to connected clients.
type Service interface {
	Notify(ctx context.Context, input NotifyInput) error
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo Repository
	push pushPublisher
	logg *logger.Logger
}

// NewService builds the notification service. The push publisher may be nil
// when live delivery is disabled; rows are still written.
func NewService(repo Repository, push pushPublisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, push: push, logg: logg}, nil
}

// Notify writes the notification row, then publishes it for live delivery.
// The row is the source of truth: a failed publish is logged and dropped, the
// client still sees the notification on its next list fetch.
func (s *service) Notify(ctx context.Context, input NotifyInput) error {
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !input.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid notification type %q", input.Type))
	}
	if input.Title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}

	var payload []byte
	if len(input.Payload) > 0 {
		raw, err := json.Marshal(input.Payload)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal notification payload")
		}
		payload = raw
	}

	row, err := s.repo.Create(ctx, &models.Notification{
		UserID:  input.UserID,
		Type:    input.Type,
		Title:   input.Title,
		Body:    input.Body,
		Payload: payload,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}

	if s.push != nil {
		envelope, err := json.Marshal(pushEnvelope{
			ID:      row.ID,
			Type:    input.Type,
			Title:   input.Title,
			Body:    input.Body,
			Payload: input.Payload,
		})
		if err == nil {
			err = s.push.Publish(ctx, s.push.PushChannel(input.UserID.String()), envelope)
		}
		if err != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, input.UserID.String()), fmt.Sprintf("push publish failed: %v", err))
		}
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	list, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	return list, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}
	return count, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil || notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and notification id required")
	}
	if err := s.repo.MarkRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return nil
}
