package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"

	"github.com/rassdread/homecheff-backend/pkg/config"
	"github.com/rassdread/homecheff-backend/pkg/logger"
)

var errAPIKeyRequired = errors.New("stripe secret key is required")

// Client wraps Stripe's API client plus the mode derived from the key.
type Client struct {
	api           *stripe.Client
	mode          Mode
	signingSecret string
}

// NewClient initializes Stripe once with the configured secrets. The mode is
// inferred from the secret key prefix rather than configured separately, so
// the client and the data it touches can never disagree.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.SecretKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	mode := ModeFromSecretKey(apiKey)
	if mode == ModeUnknown {
		return nil, fmt.Errorf("unrecognized stripe secret key prefix (want sk_test/rk_test or sk_live/rk_live)")
	}

	api := stripe.NewClient(apiKey)
	stripe.Key = apiKey

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", mode))
	}

	return &Client{
		api:           api,
		mode:          mode,
		signingSecret: strings.TrimSpace(cfg.WebhookSecret),
	}, nil
}

// API returns the underlying Stripe API client.
func (c *Client) API() *stripe.Client {
	if c == nil {
		return nil
	}
	return c.api
}

// Mode reports whether this client talks to test or live Stripe.
func (c *Client) Mode() Mode {
	if c == nil {
		return ModeUnknown
	}
	return c.mode
}

// SigningSecret returns the webhook signing secret.
func (c *Client) SigningSecret() string {
	if c == nil {
		return ""
	}
	return c.signingSecret
}
