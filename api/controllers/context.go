package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/api/middleware"
	"github.com/rassdread/homecheff-backend/internal/orders"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
)

// actorFromContext rebuilds the authenticated actor from the values the auth
// middleware stored on the request context.
func actorFromContext(ctx context.Context) (orders.Actor, error) {
	rawUserID := middleware.UserIDFromContext(ctx)
	if rawUserID == "" {
		return orders.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return orders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}

	role, err := enums.ParseUserRole(middleware.RoleFromContext(ctx))
	if err != nil {
		return orders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid role")
	}

	actor := orders.Actor{UserID: userID, Role: role}
	if raw := middleware.SellerProfileIDFromContext(ctx); raw != "" {
		sellerID, err := uuid.Parse(raw)
		if err != nil {
			return orders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid seller profile id")
		}
		actor.SellerProfileID = &sellerID
	}
	return actor, nil
}

func userIDFromContext(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
