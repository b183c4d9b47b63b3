package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
	"github.com/rassdread/homecheff-backend/pkg/pagination"
	"github.com/rassdread/homecheff-backend/pkg/security"
)

// sealedKeyInfo binds the derived key-encryption key to conversation sealing.
const sealedKeyInfo = "conversation-keys"

// pushPublisher is the pub/sub surface used for live message delivery.
type pushPublisher interface {
	Publish(ctx context.Context, channel string, payload any) error
	PushChannel(userID string) string
}

// Service manages order conversations, messages and sealed conversation keys.
type Service interface {
	PostSystemMessage(ctx context.Context, orderID uuid.UUID, participantIDs []uuid.UUID, body string) error
	PostMessage(ctx context.Context, input PostMessageInput) (*models.Message, error)
	Messages(ctx context.Context, conversationID, requesterID uuid.UUID, params pagination.Params) (*MessageList, error)
	EnsureConversationKey(ctx context.Context, conversationID uuid.UUID) ([]byte, error)
}

type service struct {
	repo Repository
	push pushPublisher
	kek  []byte
	logg *logger.Logger
}

// NewService builds the chat service. The key-encryption key is derived once
// from the configured system key; the push publisher may be nil when live
// delivery is disabled.
func NewService(repo Repository, push pushPublisher, systemKey string, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("chat repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	kek, err := security.DeriveKEK(systemKey, sealedKeyInfo)
	if err != nil {
		return nil, fmt.Errorf("derive conversation kek: %w", err)
	}
	return &service{repo: repo, push: push, kek: kek, logg: logg}, nil
}

// PostSystemMessage appends a platform-generated message to the order's
// conversation, creating the conversation with the given participants when
// the buyer and sellers have not chatted yet.
func (s *service) PostSystemMessage(ctx context.Context, orderID uuid.UUID, participantIDs []uuid.UUID, body string) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if body == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "message body required")
	}

	conversation, err := s.repo.FindConversationByOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conversation, err = s.createOrderConversation(ctx, orderID, participantIDs)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve order conversation")
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		Type:           enums.MessageTypeSystem,
		Body:           body,
	}
	if _, err := s.repo.CreateMessage(ctx, message); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create system message")
	}

	s.publish(ctx, conversation.ID, message, nil)
	return nil
}

func (s *service) createOrderConversation(ctx context.Context, orderID uuid.UUID, participantIDs []uuid.UUID) (*models.Conversation, error) {
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("conversation for order %s needs at least one participant", orderID)
	}

	seen := make(map[uuid.UUID]struct{}, len(participantIDs))
	conversation := &models.Conversation{OrderID: &orderID}
	for _, userID := range participantIDs {
		if userID == uuid.Nil {
			continue
		}
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		conversation.Participants = append(conversation.Participants, models.ConversationParticipant{UserID: userID})
	}
	return s.repo.CreateConversation(ctx, conversation)
}

func (s *service) PostMessage(ctx context.Context, input PostMessageInput) (*models.Message, error) {
	if input.ConversationID == uuid.Nil || input.SenderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "conversation id and sender id required")
	}
	if input.Body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body required")
	}

	member, err := s.repo.IsParticipant(ctx, input.ConversationID, input.SenderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check conversation membership")
	}
	if !member {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a participant of this conversation")
	}

	senderID := input.SenderID
	message := &models.Message{
		ConversationID: input.ConversationID,
		SenderID:       &senderID,
		Type:           enums.MessageTypeText,
		Body:           input.Body,
	}
	if _, err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create message")
	}

	s.publish(ctx, input.ConversationID, message, &senderID)
	return message, nil
}

func (s *service) Messages(ctx context.Context, conversationID, requesterID uuid.UUID, params pagination.Params) (*MessageList, error) {
	if conversationID == uuid.Nil || requesterID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "conversation id and requester id required")
	}

	member, err := s.repo.IsParticipant(ctx, conversationID, requesterID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check conversation membership")
	}
	if !member {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a participant of this conversation")
	}

	list, err := s.repo.ListMessages(ctx, conversationID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}
	return list, nil
}

// EnsureConversationKey returns the conversation's content key, generating and
// sealing a fresh key on first use.
func (s *service) EnsureConversationKey(ctx context.Context, conversationID uuid.UUID) ([]byte, error) {
	if conversationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "conversation id required")
	}

	row, err := s.repo.FindConversationKey(ctx, conversationID)
	if err == nil {
		key, err := security.OpenKey(s.kek, row.SealedKey)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open conversation key")
		}
		return key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find conversation key")
	}

	key, err := security.NewContentKey()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate conversation key")
	}
	sealed, err := security.SealKey(s.kek, key)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seal conversation key")
	}
	if _, err := s.repo.CreateConversationKey(ctx, &models.ConversationKey{
		ConversationID: conversationID,
		SealedKey:      sealed,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store conversation key")
	}
	return key, nil
}

// publish fans the message out to every participant except the sender. A
// failed publish is logged and dropped; the row is the source of truth.
func (s *service) publish(ctx context.Context, conversationID uuid.UUID, message *models.Message, senderID *uuid.UUID) {
	if s.push == nil {
		return
	}

	participants, err := s.repo.ListParticipants(ctx, conversationID)
	if err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("list participants for publish failed: %v", err))
		return
	}

	envelope, err := json.Marshal(messageEnvelope{
		ID:             message.ID,
		ConversationID: conversationID,
		SenderID:       message.SenderID,
		Type:           message.Type.String(),
		Body:           message.Body,
	})
	if err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("marshal message envelope failed: %v", err))
		return
	}

	for _, participant := range participants {
		if senderID != nil && participant.UserID == *senderID {
			continue
		}
		channel := s.push.PushChannel(participant.UserID.String())
		if err := s.push.Publish(ctx, channel, envelope); err != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, participant.UserID.String()), fmt.Sprintf("message publish failed: %v", err))
		}
	}
}
