package reviews

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rassdread/homecheff-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "review-test-secret",
		Issuer:            "homecheff-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()
	orderItemID := uuid.New()
	buyerID := uuid.New()

	token, jti, expiresAt, err := mintToken(cfg, now, orderItemID, buyerID)
	if err != nil {
		t.Fatalf("mintToken: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a jti")
	}
	if want := now.Add(reviewTokenTTL); !expiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, expiresAt)
	}

	claims, err := parseToken(cfg, token)
	if err != nil {
		t.Fatalf("parseToken: %v", err)
	}
	if claims.OrderItemID != orderItemID {
		t.Fatalf("expected order item %s, got %s", orderItemID, claims.OrderItemID)
	}
	if claims.BuyerID != buyerID {
		t.Fatalf("expected buyer %s, got %s", buyerID, claims.BuyerID)
	}
	if claims.ID != jti {
		t.Fatalf("expected jti %s, got %s", jti, claims.ID)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, _, _, err := mintToken(cfg, time.Now(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("mintToken: %v", err)
	}

	other := cfg
	other.Secret = "some-other-secret"
	if _, err := parseToken(other, token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	issued := time.Now().Add(-reviewTokenTTL - time.Hour)
	token, _, _, err := mintToken(cfg, issued, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("mintToken: %v", err)
	}

	if _, err := parseToken(cfg, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}
