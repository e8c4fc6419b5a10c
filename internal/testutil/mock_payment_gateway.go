package testutil

import (
	"context"
	"sync"

	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/payment"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// MockPaymentGateway is a configurable in-memory payment gateway. Tests set
// the next outcome and inspect the recorded requests.
type MockPaymentGateway struct {
	mu sync.Mutex

	// Next outcomes. Zero values mean "succeed".
	NextDeclineCode    types.PaymentDeclineCode
	NextChargeErr      error
	NextIntentErr      error
	NextWebhookEvent   *payment.Event
	NextWebhookErr     error
	FailChargeAttempts int // transient failures before success

	ChargeRequests []*payment.ChargeRequest
	IntentRequests []*payment.IntentRequest

	chargeCount int
}

// NewMockPaymentGateway creates a new instance of MockPaymentGateway
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (g *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, req *payment.IntentRequest) (*payment.IntentResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.IntentRequests = append(g.IntentRequests, req)
	if g.NextIntentErr != nil {
		return nil, g.NextIntentErr
	}
	return &payment.IntentResult{
		ProviderRef:  "pi_mock_" + req.IdempotencyKey,
		ClientSecret: "cs_mock",
		Succeeded:    true,
	}, nil
}

func (g *MockPaymentGateway) ChargeSavedPaymentMethod(ctx context.Context, req *payment.ChargeRequest) (*payment.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ChargeRequests = append(g.ChargeRequests, req)
	g.chargeCount++

	if g.FailChargeAttempts > 0 {
		g.FailChargeAttempts--
		return nil, ierr.NewError("gateway timeout").
			WithHint("Payment provider unavailable").
			Mark(ierr.ErrSystem)
	}
	if g.NextChargeErr != nil {
		return nil, g.NextChargeErr
	}
	if g.NextDeclineCode != "" {
		return &payment.ChargeResult{
			ProviderRef: "ch_mock_declined",
			Succeeded:   false,
			DeclineCode: g.NextDeclineCode,
		}, nil
	}
	return &payment.ChargeResult{
		ProviderRef: "ch_mock_" + req.IdempotencyKey,
		Succeeded:   true,
	}, nil
}

func (g *MockPaymentGateway) CreatePortalSession(ctx context.Context, providerCustomerRef string) (string, error) {
	return "https://billing.example.com/session/" + providerCustomerRef, nil
}

func (g *MockPaymentGateway) ParseWebhookEvent(payload []byte, signature string) (*payment.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.NextWebhookErr != nil {
		return nil, g.NextWebhookErr
	}
	return g.NextWebhookEvent, nil
}

// ChargeCount returns the number of charge attempts seen so far
func (g *MockPaymentGateway) ChargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chargeCount
}

// Clear resets all configured outcomes and recorded requests
func (g *MockPaymentGateway) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.NextDeclineCode = ""
	g.NextChargeErr = nil
	g.NextIntentErr = nil
	g.NextWebhookEvent = nil
	g.NextWebhookErr = nil
	g.FailChargeAttempts = 0
	g.ChargeRequests = nil
	g.IntentRequests = nil
	g.chargeCount = 0
}
