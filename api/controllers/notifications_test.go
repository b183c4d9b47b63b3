package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/internal/notifications"
	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	"github.com/rassdread/homecheff-backend/pkg/pagination"
)

type testNotificationsService struct {
	listFn        func(ctx context.Context, userID uuid.UUID, params pagination.Params) (*notifications.List, error)
	unreadFn      func(ctx context.Context, userID uuid.UUID) (int64, error)
	markReadFn    func(ctx context.Context, userID, notificationID uuid.UUID) error
	markAllReadFn func(ctx context.Context, userID uuid.UUID) error
}

func (s *testNotificationsService) Notify(ctx context.Context, input notifications.NotifyInput) error {
	return nil
}

func (s *testNotificationsService) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*notifications.List, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID, params)
	}
	return &notifications.List{}, nil
}

func (s *testNotificationsService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.unreadFn != nil {
		return s.unreadFn(ctx, userID)
	}
	return 0, nil
}

func (s *testNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (s *testNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, userID)
	}
	return nil
}

func TestListNotificationsIncludesUnreadCount(t *testing.T) {
	userID := uuid.New()
	svc := &testNotificationsService{
		listFn: func(ctx context.Context, gotUser uuid.UUID, params pagination.Params) (*notifications.List, error) {
			if gotUser != userID {
				t.Fatalf("unexpected user %s", gotUser)
			}
			return &notifications.List{Items: []models.Notification{{ID: uuid.New(), UserID: gotUser}}}, nil
		},
		unreadFn: func(ctx context.Context, gotUser uuid.UUID) (int64, error) {
			return 3, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req = withActor(req, userID, enums.UserRoleBuyer, nil)

	resp := httptest.NewRecorder()
	ListNotifications(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			Items       []json.RawMessage `json:"items"`
			UnreadCount int64             `json:"unread_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(envelope.Data.Items))
	}
	if envelope.Data.UnreadCount != 3 {
		t.Fatalf("expected unread_count=3 got %d", envelope.Data.UnreadCount)
	}
}

func TestMarkNotificationReadInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/invalid/read", nil)
	req = withActor(req, uuid.New(), enums.UserRoleBuyer, nil)
	req = addRouteParam(req, "notificationId", "invalid")

	resp := httptest.NewRecorder()
	MarkNotificationRead(&testNotificationsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	userID := uuid.New()
	called := false
	svc := &testNotificationsService{
		markAllReadFn: func(ctx context.Context, gotUser uuid.UUID) error {
			called = true
			if gotUser != userID {
				t.Fatalf("unexpected user %s", gotUser)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil)
	req = withActor(req, userID, enums.UserRoleBuyer, nil)

	resp := httptest.NewRecorder()
	MarkAllNotificationsRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected mark all read called")
	}
}
