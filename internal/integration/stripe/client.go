package stripe

import (
	"github.com/Unicash-organization/unicash-entitlement/internal/config"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/stripe/stripe-go/v82"
)

// Client handles Stripe API client setup and configuration
type Client struct {
	cfg    *config.Configuration
	logger *logger.Logger
}

// NewClient creates a new Stripe client wrapper
func NewClient(cfg *config.Configuration, logger *logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// StripeClient returns a configured Stripe API client
func (c *Client) StripeClient() *stripe.Client {
	return stripe.NewClient(c.cfg.Stripe.SecretKey, nil)
}

// WebhookSecret returns the signing secret for webhook verification
func (c *Client) WebhookSecret() string {
	return c.cfg.Stripe.WebhookSecret
}

// PortalReturnURL returns the billing portal return URL
func (c *Client) PortalReturnURL() string {
	return c.cfg.Stripe.PortalReturn
}
