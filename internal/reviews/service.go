package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/rassdread/homecheff-backend/internal/notifications"
	"github.com/rassdread/homecheff-backend/pkg/config"
	"github.com/rassdread/homecheff-backend/pkg/db/models"
	"github.com/rassdread/homecheff-backend/pkg/email"
	"github.com/rassdread/homecheff-backend/pkg/enums"
	pkgerrors "github.com/rassdread/homecheff-backend/pkg/errors"
	"github.com/rassdread/homecheff-backend/pkg/logger"
	"github.com/rassdread/homecheff-backend/pkg/pagination"
)

// notifier is the slice of the notification service used for review prompts.
type notifier interface {
	Notify(ctx context.Context, input notifications.NotifyInput) error
}

// Service issues review requests for delivered orders and records submissions.
type Service interface {
	RequestForOrder(ctx context.Context, order *models.Order, buyer *models.User) error
	Submit(ctx context.Context, input SubmitInput) (*models.Review, error)
	ProductReviews(ctx context.Context, productID uuid.UUID, params pagination.Params) (*List, error)
}

type service struct {
	repo    Repository
	mail    email.Sender
	notify  notifier
	jwtCfg  config.JWTConfig
	baseURL string
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the reviews service. The mail sender may be nil when
// outbound email is disabled; review rows and in-app prompts are still created.
func NewService(repo Repository, mail email.Sender, notify notifier, jwtCfg config.JWTConfig, baseURL string, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	if notify == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		mail:    mail,
		notify:  notify,
		jwtCfg:  jwtCfg,
		baseURL: baseURL,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// RequestForOrder creates a review request per order item. Requests are
// idempotent per item: an open request re-sends the prompt with the same
// token id, a submitted or expired one stays silent, and at most one row
// ever exists per item. Failures on one item do not block the others; the
// combined error reports everything that failed.
func (s *service) RequestForOrder(ctx context.Context, order *models.Order, buyer *models.User) error {
	if order == nil || len(order.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order with items required")
	}
	if buyer == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "buyer required")
	}

	now := s.now()
	ctx = s.logg.WithOrderID(ctx, order.ID.String())

	var errs error
	for _, item := range order.Items {
		if err := s.requestForItem(ctx, item, buyer, now); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("order item %s: %w", item.ID, err))
		}
	}
	return errs
}

func (s *service) requestForItem(ctx context.Context, item models.OrderItem, buyer *models.User, now time.Time) error {
	existing, err := s.repo.FindByOrderItem(ctx, item.ID)
	switch {
	case err == nil:
		if existing.SubmittedAt != nil || !now.Before(existing.ExpiresAt) {
			return nil
		}
		// still open, re-send the prompt under the original token id
		token, err := signToken(s.jwtCfg, now, existing.ExpiresAt, existing.TokenID, item.ID, buyer.ID)
		if err != nil {
			return err
		}
		return s.sendRequest(ctx, item, buyer, token)
	case errors.Is(err, gorm.ErrRecordNotFound):
		token, jti, expiresAt, err := mintToken(s.jwtCfg, now, item.ID, buyer.ID)
		if err != nil {
			return err
		}
		if _, err := s.repo.Create(ctx, &models.Review{
			OrderItemID: item.ID,
			ProductID:   item.ProductID,
			BuyerID:     buyer.ID,
			TokenID:     jti,
			ExpiresAt:   expiresAt,
		}); err != nil {
			return fmt.Errorf("create review request: %w", err)
		}
		return s.sendRequest(ctx, item, buyer, token)
	default:
		return fmt.Errorf("find review request: %w", err)
	}
}

func (s *service) sendRequest(ctx context.Context, item models.OrderItem, buyer *models.User, token string) error {
	link := fmt.Sprintf("%s/review?token=%s", s.baseURL, token)

	var errs error
	if err := s.notify.Notify(ctx, notifications.NotifyInput{
		UserID: buyer.ID,
		Type:   enums.NotificationTypeReviewRequest,
		Title:  "Laat een review achter",
		Body:   fmt.Sprintf("Hoe beviel %s? Deel je ervaring met andere kopers.", item.Title),
		Payload: map[string]any{
			"order_item_id": item.ID.String(),
			"product_id":    item.ProductID.String(),
			"link":          link,
		},
	}); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("review notification: %w", err))
	}

	if s.mail != nil {
		if err := s.mail.Send(ctx, email.Message{
			To:       buyer.Email,
			ToName:   buyer.Name,
			Subject:  "Hoe was je bestelling bij HomeCheff?",
			TextBody: fmt.Sprintf("Hoe beviel %s? Laat een review achter: %s", item.Title, link),
			HTMLBody: fmt.Sprintf(`<p>Hoe beviel <strong>%s</strong>?</p><p><a href=%q>Laat een review achter</a></p>`, item.Title, link),
		}); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("review email: %w", err))
		}
	}
	return errs
}

// Submit records the buyer's rating for the order item the token was minted
// for. The token is single purpose: once the review is submitted it cannot
// be used again.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Review, error) {
	claims, err := parseToken(s.jwtCfg, input.Token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid or expired review token")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	review, err := s.repo.FindByTokenID(ctx, claims.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review request not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find review request")
	}
	if review.OrderItemID != claims.OrderItemID || review.BuyerID != claims.BuyerID {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "review token does not match request")
	}

	now := s.now()
	if review.SubmittedAt != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "review already submitted")
	}
	if !now.Before(review.ExpiresAt) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "review window has closed")
	}

	rating := input.Rating
	review.Rating = &rating
	if input.Comment != "" {
		comment := input.Comment
		review.Comment = &comment
	}
	review.SubmittedAt = &now
	if err := s.repo.Save(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save review")
	}
	return review, nil
}

func (s *service) ProductReviews(ctx context.Context, productID uuid.UUID, params pagination.Params) (*List, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	list, err := s.repo.ListByProduct(ctx, productID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product reviews")
	}
	return list, nil
}
