package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
	"github.com/rassdread/homecheff-backend/pkg/pagination"
)

type fakeRepo struct {
	created  []models.Notification
	failNext error
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if f.failNext != nil {
		return nil, f.failNext
	}
	n.ID = uuid.New()
	f.created = append(f.created, *n)
	return n, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error) {
	return &List{Items: f.created}, nil
}

func (f *fakeRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(f.created)), nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error { return nil }

type fakePush struct {
	published map[string][]string
	err       error
}

func (f *fakePush) Publish(ctx context.Context, channel string, payload any) error {
	if f.err != nil {
		return f.err
	}
	if f.published == nil {
		f.published = make(map[string][]string)
	}
	raw, _ := payload.([]byte)
	f.published[channel] = append(f.published[channel], string(raw))
	return nil
}

func (f *fakePush) PushChannel(userID string) string { return "hc:push:" + userID }

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestNotifyWritesRowAndPublishes(t *testing.T) {
	repo := &fakeRepo{}
	push := &fakePush{}
	svc, err := NewService(repo, push, testLogger())
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	userID := uuid.New()
	orderID := uuid.New()
	err = svc.Notify(context.Background(), NotifyInput{
		UserID: userID,
		Type:   enums.NotificationTypeOrderUpdate,
		Title:  "Bestelling onderweg",
		Body:   "Je bestelling is verzonden.",
		Payload: map[string]any{
			"order_id": orderID.String(),
		},
	})
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one notification row, got %d", len(repo.created))
	}
	row := repo.created[0]
	if row.UserID != userID || row.Type != enums.NotificationTypeOrderUpdate {
		t.Fatalf("unexpected row %+v", row)
	}

	channel := push.PushChannel(userID.String())
	if len(push.published[channel]) != 1 {
		t.Fatalf("expected one push message, got %d", len(push.published[channel]))
	}
	var envelope map[string]any
	if err := json.Unmarshal([]byte(push.published[channel][0]), &envelope); err != nil {
		t.Fatalf("push payload is not json: %v", err)
	}
	if envelope["title"] != "Bestelling onderweg" {
		t.Fatalf("unexpected push payload %v", envelope)
	}
}

func TestNotifySurvivesPushFailure(t *testing.T) {
	repo := &fakeRepo{}
	push := &fakePush{err: errors.New("redis down")}
	svc, err := NewService(repo, push, testLogger())
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	err = svc.Notify(context.Background(), NotifyInput{
		UserID: uuid.New(),
		Type:   enums.NotificationTypeSystem,
		Title:  "Onderhoud",
	})
	if err != nil {
		t.Fatalf("expected push failure to be swallowed, got %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("row must be written even when push fails")
	}
}

func TestNotifyFailsWhenRowWriteFails(t *testing.T) {
	repo := &fakeRepo{failNext: errors.New("db down")}
	svc, err := NewService(repo, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	err = svc.Notify(context.Background(), NotifyInput{
		UserID: uuid.New(),
		Type:   enums.NotificationTypeSystem,
		Title:  "Onderhoud",
	})
	if err == nil {
		t.Fatal("expected error when row write fails")
	}
}

func TestNotifyValidation(t *testing.T) {
	svc, err := NewService(&fakeRepo{}, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	cases := []NotifyInput{
		{Type: enums.NotificationTypeSystem, Title: "x"},
		{UserID: uuid.New(), Type: "bogus", Title: "x"},
		{UserID: uuid.New(), Type: enums.NotificationTypeSystem},
	}
	for i, input := range cases {
		err := svc.Notify(context.Background(), input)
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestMarkReadNotFound(t *testing.T) {
	svc, err := NewService(&fakeRepo{}, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	err = svc.MarkRead(context.Background(), uuid.New(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
