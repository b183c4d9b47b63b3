package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/pkg/db/models"
)

// cascadeStatements deletes everything a user owns, children before parents.
// Every ? binds the same list of user ids. The final statement removes the
// users themselves; its row count is the number of deleted accounts.
var cascadeStatements = []string{
	// telemetry and moderation
	`DELETE FROM analytics_events WHERE user_id IN (?)`,
	`UPDATE reports SET resolved_by_id = NULL WHERE resolved_by_id IN (?)`,
	`DELETE FROM reports WHERE reporter_id IN (?) OR target_user_id IN (?)`,

	// reservations they hold or against their listings
	`DELETE FROM stock_reservations WHERE user_id IN (?)
	   OR product_id IN (SELECT id FROM products WHERE seller_profile_id IN
	     (SELECT id FROM seller_profiles WHERE user_id IN (?)))`,

	// reviews they wrote, on their orders, or on their products
	`DELETE FROM reviews WHERE buyer_id IN (?)
	   OR order_item_id IN (SELECT id FROM order_items WHERE order_id IN
	     (SELECT id FROM orders WHERE user_id IN (?)))
	   OR product_id IN (SELECT id FROM products WHERE seller_profile_id IN
	     (SELECT id FROM seller_profiles WHERE user_id IN (?)))`,

	// engagement
	`DELETE FROM favorites WHERE user_id IN (?)
	   OR product_id IN (SELECT id FROM products WHERE seller_profile_id IN
	     (SELECT id FROM seller_profiles WHERE user_id IN (?)))`,
	`DELETE FROM follows WHERE user_id IN (?)
	   OR seller_profile_id IN (SELECT id FROM seller_profiles WHERE user_id IN (?))`,

	// conversations they participate in or tied to their orders
	`DELETE FROM conversation_keys WHERE conversation_id IN (
	   SELECT conversation_id FROM conversation_participants WHERE user_id IN (?)
	   UNION
	   SELECT id FROM conversations WHERE order_id IN (SELECT id FROM orders WHERE user_id IN (?)))`,
	`DELETE FROM messages WHERE sender_id IN (?) OR conversation_id IN (
	   SELECT conversation_id FROM conversation_participants WHERE user_id IN (?)
	   UNION
	   SELECT id FROM conversations WHERE order_id IN (SELECT id FROM orders WHERE user_id IN (?)))`,
	`DELETE FROM conversations WHERE order_id IN (SELECT id FROM orders WHERE user_id IN (?))
	   OR id IN (SELECT conversation_id FROM conversation_participants WHERE user_id IN (?))`,

	// money trail under their orders or their seller profiles
	`DELETE FROM refunds WHERE transaction_id IN (SELECT id FROM transactions
	   WHERE order_id IN (SELECT id FROM orders WHERE user_id IN (?))
	   OR seller_profile_id IN (SELECT id FROM seller_profiles WHERE user_id IN (?)))`,
	`DELETE FROM payouts WHERE transaction_id IN (SELECT id FROM transactions
	   WHERE order_id IN (SELECT id FROM orders WHERE user_id IN (?))
	   OR seller_profile_id IN (SELECT id FROM seller_profiles WHERE user_id IN (?)))`,
	`DELETE FROM transactions WHERE order_id IN (SELECT id FROM orders WHERE user_id IN (?))
	   OR seller_profile_id IN (SELECT id FROM seller_profiles WHERE user_id IN (?))`,

	// delivery assignments on their orders or their courier profile
	`DELETE FROM delivery_orders WHERE order_id IN (SELECT id FROM orders WHERE user_id IN (?))
	   OR delivery_profile_id IN (SELECT id FROM delivery_profiles WHERE user_id IN (?))`,

	// order lines they bought or their sellers sold, then their orders
	`DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE user_id IN (?))
	   OR seller_profile_id IN (SELECT id FROM seller_profiles WHERE user_id IN (?))`,
	`DELETE FROM orders WHERE user_id IN (?)`,

	// seller catalog
	`DELETE FROM product_images WHERE product_id IN (SELECT id FROM products
	   WHERE seller_profile_id IN (SELECT id FROM seller_profiles WHERE user_id IN (?)))`,
	`DELETE FROM products WHERE seller_profile_id IN (SELECT id FROM seller_profiles WHERE user_id IN (?))`,
	`DELETE FROM workspace_content_media WHERE workspace_content_id IN (
	   SELECT id FROM workspace_contents WHERE seller_profile_id IN
	     (SELECT id FROM seller_profiles WHERE user_id IN (?)))`,
	`DELETE FROM workspace_contents WHERE seller_profile_id IN (SELECT id FROM seller_profiles WHERE user_id IN (?))`,
	`DELETE FROM workplace_photos WHERE seller_profile_id IN (SELECT id FROM seller_profiles WHERE user_id IN (?))`,
	`DELETE FROM subscriptions WHERE seller_profile_id IN (SELECT id FROM seller_profiles WHERE user_id IN (?))`,
	`DELETE FROM seller_profiles WHERE user_id IN (?)`,
	`DELETE FROM delivery_profiles WHERE user_id IN (?)`,

	// inbox and auth surface
	`DELETE FROM notifications WHERE user_id IN (?)`,
	`DELETE FROM verification_tokens WHERE identifier IN (SELECT email FROM users WHERE id IN (?))`,
	`DELETE FROM accounts WHERE user_id IN (?)`,
	`DELETE FROM sessions WHERE user_id IN (?)`,
	`DELETE FROM admin_permissions WHERE user_id IN (?)`,

	`DELETE FROM users WHERE id IN (?)`,
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a users repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CountExisting(ctx context.Context, userIDs []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id IN (?)", userIDs).
		Count(&count).Error
	return count, err
}

// CascadeDelete runs the fixed statement list. Any failure aborts and the
// caller's transaction rolls the whole batch back.
func (r *repository) CascadeDelete(ctx context.Context, userIDs []uuid.UUID) (int64, error) {
	var deleted int64
	for i, statement := range cascadeStatements {
		args := make([]any, strings.Count(statement, "(?)"))
		for j := range args {
			args[j] = userIDs
		}

		result := r.db.WithContext(ctx).Exec(statement, args...)
		if result.Error != nil {
			return 0, fmt.Errorf("cascade statement %d: %w", i+1, result.Error)
		}
		if i == len(cascadeStatements)-1 {
			deleted = result.RowsAffected
		}
	}
	return deleted, nil
}

func (r *repository) CreateAdminAction(ctx context.Context, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Create(action).Error
}
