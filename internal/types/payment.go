package types

// PaymentDeclineCode is the stable set of decline reasons surfaced to callers.
// Provider-specific codes are mapped into this set at the integration boundary.
type PaymentDeclineCode string

const (
	PaymentDeclineCodeDeclined          PaymentDeclineCode = "declined"
	PaymentDeclineCodeInsufficientFunds PaymentDeclineCode = "insufficient_funds"
	PaymentDeclineCodeExpiredCard       PaymentDeclineCode = "expired_card"
	PaymentDeclineCodeProcessingError   PaymentDeclineCode = "processing_error"
)

func (c PaymentDeclineCode) String() string {
	return string(c)
}

// PaymentEventType classifies asynchronous provider events consumed by the
// membership state machine.
type PaymentEventType string

const (
	PaymentEventInvoiceFailed    PaymentEventType = "invoice.payment_failed"
	PaymentEventInvoiceSucceeded PaymentEventType = "invoice.payment_succeeded"
)
