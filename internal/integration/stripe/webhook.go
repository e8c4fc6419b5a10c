package stripe

import (
	"encoding/json"

	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/payment"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// metadata key carrying our user id on provider objects
const metadataUserIDKey = "unicash_user_id"

// ParseWebhookEvent verifies the signature and normalizes the provider event
// for the membership state machine. Only invoice payment events are
// meaningful here; anything else returns a nil event with no error so the
// handler can acknowledge and drop it.
func (g *Gateway) ParseWebhookEvent(payload []byte, signature string) (*payment.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.client.WebhookSecret())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Webhook signature verification failed").
			Mark(ierr.ErrPermissionDenied)
	}

	switch event.Type {
	case "invoice.payment_failed", "invoice.payment_succeeded":
	default:
		return nil, nil
	}

	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Malformed webhook payload").
			Mark(ierr.ErrValidation)
	}

	userID := invoice.Metadata[metadataUserIDKey]
	if userID == "" {
		return nil, ierr.NewError("webhook invoice has no user reference").
			WithHint("Invoice metadata is missing the user id").
			Mark(ierr.ErrValidation)
	}

	out := &payment.Event{
		UserID:      userID,
		ProviderRef: invoice.ID,
	}

	switch event.Type {
	case "invoice.payment_failed":
		out.Type = types.PaymentEventInvoiceFailed
		// No scheduled retry means the provider has given up on this invoice
		out.FinalAttempt = invoice.NextPaymentAttempt == 0
		out.DeclineCode = types.PaymentDeclineCodeDeclined
	case "invoice.payment_succeeded":
		out.Type = types.PaymentEventInvoiceSucceeded
	}

	return out, nil
}
