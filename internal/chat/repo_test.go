package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	"github.com/rassdread/homecheff-backend/pkg/pagination"
)

func setupChatTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS conversations (
  id TEXT PRIMARY KEY,
  order_id TEXT UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS conversation_participants (
  id TEXT PRIMARY KEY,
  conversation_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  last_read_at DATETIME,
  created_at DATETIME,
  UNIQUE (conversation_id, user_id)
);
CREATE TABLE IF NOT EXISTS messages (
  id TEXT PRIMARY KEY,
  conversation_id TEXT NOT NULL,
  sender_id TEXT,
  type TEXT NOT NULL DEFAULT 'text',
  body TEXT NOT NULL,
  created_at DATETIME
);
CREATE TABLE IF NOT EXISTS conversation_keys (
  id TEXT PRIMARY KEY,
  conversation_id TEXT NOT NULL UNIQUE,
  sealed_key TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestCreateAndFindConversationByOrder(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	buyer := uuid.New()
	seller := uuid.New()

	created, err := repo.CreateConversation(ctx, &models.Conversation{
		ID:      uuid.New(),
		OrderID: &orderID,
		Participants: []models.ConversationParticipant{
			{ID: uuid.New(), UserID: buyer},
			{ID: uuid.New(), UserID: seller},
		},
	})
	require.NoError(t, err)

	found, err := repo.FindConversationByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Len(t, found.Participants, 2)

	_, err = repo.FindConversationByOrder(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	member, err := repo.IsParticipant(ctx, created.ID, buyer)
	require.NoError(t, err)
	assert.True(t, member)

	member, err = repo.IsParticipant(ctx, created.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, member)
}

func TestListMessagesPaginates(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	conversationID := uuid.New()
	base := time.Now().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		message := models.Message{
			ID:             uuid.New(),
			ConversationID: conversationID,
			Type:           enums.MessageTypeText,
			Body:           "bericht",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&message).Error)
		ids = append(ids, message.ID)
	}

	page, err := repo.ListMessages(ctx, conversationID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[2], page.Items[0].ID)
	assert.NotEmpty(t, page.NextCursor)

	next, err := repo.ListMessages(ctx, conversationID, pagination.Params{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, next.Items, 1)
	assert.Equal(t, ids[0], next.Items[0].ID)
	assert.Empty(t, next.NextCursor)
}

func TestConversationKeyRoundtrip(t *testing.T) {
	db := setupChatTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	conversationID := uuid.New()
	_, err := repo.FindConversationKey(ctx, conversationID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.CreateConversationKey(ctx, &models.ConversationKey{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SealedKey:      "c2VhbGVk",
	})
	require.NoError(t, err)

	key, err := repo.FindConversationKey(ctx, conversationID)
	require.NoError(t, err)
	assert.Equal(t, "c2VhbGVk", key.SealedKey)
}
