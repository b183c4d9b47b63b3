package chat

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/pagination"
)

// Repository defines persistence operations for conversations and messages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindConversationByOrder(ctx context.Context, orderID uuid.UUID) (*models.Conversation, error)
	CreateConversation(ctx context.Context, conversation *models.Conversation) (*models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID uuid.UUID) (bool, error)
	ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]models.ConversationParticipant, error)
	CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID, params pagination.Params) (*MessageList, error)
	FindConversationKey(ctx context.Context, conversationID uuid.UUID) (*models.ConversationKey, error)
	CreateConversationKey(ctx context.Context, key *models.ConversationKey) (*models.ConversationKey, error)
}
