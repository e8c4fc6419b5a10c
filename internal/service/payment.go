package service

import (
	"context"

	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// PaymentEventService turns provider webhook events into membership state
// machine transitions.
type PaymentEventService interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentEventService struct {
	ServiceParams
	memberships MembershipService
}

// NewPaymentEventService creates a new payment event service
func NewPaymentEventService(params ServiceParams) PaymentEventService {
	return &paymentEventService{
		ServiceParams: params,
		memberships:   NewMembershipService(params),
	}
}

// HandleWebhook verifies and dispatches a provider event. Events the engine
// does not care about are acknowledged without action so the provider stops
// redelivering them.
func (s *paymentEventService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.PaymentGateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		return err
	}
	if event == nil {
		return nil
	}

	if event.UserID == "" {
		s.Logger.Warnw("webhook event without user reference", "type", event.Type)
		return nil
	}

	switch event.Type {
	case types.PaymentEventInvoiceFailed:
		_, err := s.memberships.HandlePaymentFailure(ctx, event.UserID, event.FinalAttempt)
		if ierr.IsNotFound(err) {
			return nil
		}
		return err

	case types.PaymentEventInvoiceSucceeded:
		_, err := s.memberships.HandlePaymentRecovery(ctx, event.UserID)
		if ierr.IsNotFound(err) || ierr.IsInvalidOperation(err) {
			// Either no membership or nothing to recover; the first charge of a
			// subscription also lands here and is handled by checkout confirmation
			return nil
		}
		return err

	default:
		return nil
	}
}
