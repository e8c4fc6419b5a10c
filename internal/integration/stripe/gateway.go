package stripe

import (
	"context"

	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/payment"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

// Gateway implements payment.Gateway over the Stripe API
type Gateway struct {
	client *Client
	logger *logger.Logger
}

// NewGateway creates a new Stripe payment gateway
func NewGateway(client *Client, logger *logger.Logger) *Gateway {
	return &Gateway{
		client: client,
		logger: logger,
	}
}

// CreatePaymentIntent creates a payment intent for a computed final total
func (g *Gateway) CreatePaymentIntent(ctx context.Context, req *payment.IntentRequest) (*payment.IntentResult, error) {
	sc := g.client.StripeClient()

	amountInCents := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	params := &stripe.PaymentIntentCreateParams{
		Amount:      stripe.Int64(amountInCents),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
		Metadata:    req.Metadata,
	}
	params.SetIdempotencyKey(req.IdempotencyKey)

	intent, err := sc.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return nil, g.mapStripeError(err, "failed to create payment intent")
	}

	g.logger.Infow("created payment intent",
		"user_id", req.UserID,
		"amount", req.Amount.String(),
		"payment_intent_id", intent.ID,
	)

	return &payment.IntentResult{
		ProviderRef:  intent.ID,
		ClientSecret: intent.ClientSecret,
		Succeeded:    intent.Status == stripe.PaymentIntentStatusSucceeded,
	}, nil
}

// ChargeSavedPaymentMethod charges a stored payment method off-session.
// A decline is not an error at this layer; it is reported in the result so
// the renewal sweep can record it and drive the payment-fail transition.
func (g *Gateway) ChargeSavedPaymentMethod(ctx context.Context, req *payment.ChargeRequest) (*payment.ChargeResult, error) {
	sc := g.client.StripeClient()

	amountInCents := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	params := &stripe.PaymentIntentCreateParams{
		Amount:      stripe.Int64(amountInCents),
		Currency:    stripe.String(req.Currency),
		Customer:    stripe.String(req.ProviderCustomerRef),
		Description: stripe.String(req.Description),
		OffSession:  stripe.Bool(true),
		Confirm:     stripe.Bool(true),
	}
	params.SetIdempotencyKey(req.IdempotencyKey)

	intent, err := sc.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Type == stripe.ErrorTypeCard {
			g.logger.Warnw("renewal charge declined",
				"user_id", req.UserID,
				"decline_code", stripeErr.DeclineCode,
			)
			return &payment.ChargeResult{
				Succeeded:   false,
				DeclineCode: MapDeclineCode(stripeErr),
			}, nil
		}
		return nil, g.mapStripeError(err, "failed to charge saved payment method")
	}

	return &payment.ChargeResult{
		ProviderRef: intent.ID,
		Succeeded:   intent.Status == stripe.PaymentIntentStatusSucceeded,
	}, nil
}

// CreatePortalSession returns a billing portal URL for updating stored
// payment methods
func (g *Gateway) CreatePortalSession(ctx context.Context, providerCustomerRef string) (string, error) {
	sc := g.client.StripeClient()

	params := &stripe.BillingPortalSessionCreateParams{
		Customer:  stripe.String(providerCustomerRef),
		ReturnURL: stripe.String(g.client.PortalReturnURL()),
	}

	session, err := sc.V1BillingPortalSessions.Create(ctx, params)
	if err != nil {
		return "", g.mapStripeError(err, "failed to create billing portal session")
	}

	return session.URL, nil
}

// MapDeclineCode maps provider-specific decline reasons to the stable set
// surfaced to callers
func MapDeclineCode(stripeErr *stripe.Error) types.PaymentDeclineCode {
	switch stripeErr.DeclineCode {
	case stripe.DeclineCodeInsufficientFunds:
		return types.PaymentDeclineCodeInsufficientFunds
	case stripe.DeclineCodeExpiredCard:
		return types.PaymentDeclineCodeExpiredCard
	case stripe.DeclineCodeProcessingError:
		return types.PaymentDeclineCodeProcessingError
	default:
		return types.PaymentDeclineCodeDeclined
	}
}

func (g *Gateway) mapStripeError(err error, msg string) error {
	if stripeErr, ok := err.(*stripe.Error); ok {
		if stripeErr.Type == stripe.ErrorTypeCard {
			return ierr.NewError(msg).
				WithHint("Payment was declined").
				WithReportableDetails(map[string]any{
					"decline_code": MapDeclineCode(stripeErr),
				}).
				Mark(ierr.ErrPaymentDeclined)
		}
	}

	return ierr.WithError(err).
		WithHint("Payment provider request failed").
		Mark(ierr.ErrSystem)
}
