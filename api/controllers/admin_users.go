package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/api/responses"
	"github.com/rassdread/homecheff-backend/api/validators"
	"github.com/rassdread/homecheff-backend/internal/users"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
)

type bulkDeleteUsersPayload struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,uuid"`
}

// BulkDeleteUsers removes the listed accounts and everything they own in a
// single transaction. Admin-only; partial deletion never happens.
func BulkDeleteUsers(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		actorID, err := userIDFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload bulkDeleteUsersPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		userIDs := make([]uuid.UUID, 0, len(payload.UserIDs))
		for _, raw := range payload.UserIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id").WithDetails(map[string]any{"user_id": raw}))
				return
			}
			userIDs = append(userIDs, id)
		}

		deleted, err := svc.BulkDelete(ctx, actorID, userIDs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"success":      true,
			"deletedCount": deleted,
		})
	}
}
