package controllers

import (
	"net/http"

	"github.com/rassdread/homecheff-backend/api/responses"
	"github.com/rassdread/homecheff-backend/api/validators"
	"github.com/rassdread/homecheff-backend/internal/chat"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
)

type postMessagePayload struct {
	Body string `json:"body" validate:"required,max=4000"`
}

// PostConversationMessage appends a message to a conversation the caller
// participates in and fans it out to the other participants.
func PostConversationMessage(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		userID, err := userIDFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		conversationID, err := validators.ParseUUIDParam(r, "conversationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload postMessagePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		message, err := svc.PostMessage(ctx, chat.PostMessageInput{
			ConversationID: conversationID,
			SenderID:       userID,
			Body:           payload.Body,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, message)
	}
}

// ConversationMessages returns one page of a conversation's messages.
func ConversationMessages(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		userID, err := userIDFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		conversationID, err := validators.ParseUUIDParam(r, "conversationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.Messages(ctx, conversationID, userID, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
