package payment

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
)

// IntentRequest asks the provider to create a payment intent for a computed
// final total. The idempotency key guarantees at-most-one charge per key.
type IntentRequest struct {
	UserID         string
	Amount         decimal.Decimal
	Currency       string
	Description    string
	IdempotencyKey string
	Metadata       map[string]string
}

// IntentResult is the provider-agnostic view of a created payment intent
type IntentResult struct {
	ProviderRef  string
	ClientSecret string
	Succeeded    bool
}

// ChargeRequest charges a stored payment method off-session, used by renewals
type ChargeRequest struct {
	UserID              string
	ProviderCustomerRef string
	Amount              decimal.Decimal
	Currency            string
	Description         string
	IdempotencyKey      string
}

// ChargeResult reports the outcome of an off-session charge. DeclineCode is
// only set when Succeeded is false.
type ChargeResult struct {
	ProviderRef string
	Succeeded   bool
	DeclineCode types.PaymentDeclineCode
}

// Event is a provider webhook event normalized for the state machine
type Event struct {
	Type         types.PaymentEventType
	UserID       string
	ProviderRef  string
	DeclineCode  types.PaymentDeclineCode
	FinalAttempt bool
}

// Gateway is the narrow seam between the entitlement engine and the payment
// provider. Services depend on this interface; the Stripe implementation
// lives in internal/integration/stripe.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, req *IntentRequest) (*IntentResult, error)
	ChargeSavedPaymentMethod(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
	CreatePortalSession(ctx context.Context, providerCustomerRef string) (string, error)
	ParseWebhookEvent(payload []byte, signature string) (*Event, error)
}
