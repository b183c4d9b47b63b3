package reviews

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/pkg/config"
)

// reviewTokenTTL is how long a buyer has to submit after delivery.
const reviewTokenTTL = 14 * 24 * time.Hour

var tokenSigningMethod = jwt.SigningMethodHS256

// tokenClaims binds a review token to one order item and its buyer.
type tokenClaims struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	BuyerID     uuid.UUID `json:"buyer_id"`
	jwt.RegisteredClaims
}

// mintToken issues a signed review token. The returned jti binds the token
// to its Review row.
func mintToken(cfg config.JWTConfig, now time.Time, orderItemID, buyerID uuid.UUID) (token, jti string, expiresAt time.Time, err error) {
	if cfg.Secret == "" {
		return "", "", time.Time{}, fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", "", time.Time{}, fmt.Errorf("jwt issuer is required")
	}

	jti = uuid.NewString()
	expiresAt = now.Add(reviewTokenTTL)

	signed, err := signToken(cfg, now, expiresAt, jti, orderItemID, buyerID)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, jti, expiresAt, nil
}

// signToken signs claims for an existing jti and expiry. Re-sending a still
// open review request goes through here so the original jti stays valid.
func signToken(cfg config.JWTConfig, issuedAt, expiresAt time.Time, jti string, orderItemID, buyerID uuid.UUID) (string, error) {
	claims := tokenClaims{
		OrderItemID: orderItemID,
		BuyerID:     buyerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   "review",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(tokenSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing review token: %w", err)
	}
	return signed, nil
}

// parseToken validates signature, issuer and expiry and returns the claims.
func parseToken(cfg config.JWTConfig, tokenString string) (*tokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != tokenSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{tokenSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithSubject("review"),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
