package draw

import (
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// Entry records a single accepted draw entry. At most one non-refunded entry
// may exist per (user, draw) pair, enforced by a uniqueness constraint even
// under concurrent duplicate submissions.
type Entry struct {
	ID           string `db:"id" json:"id"`
	UserID       string `db:"user_id" json:"user_id"`
	DrawID       string `db:"draw_id" json:"draw_id"`
	CreditsSpent int64  `db:"credits_spent" json:"credits_spent"`

	// Source is the credit pool the entry was primarily charged against.
	// Membership credits are consumed before boost credits.
	Source types.CreditClass `db:"source" json:"source"`

	OrderNo        string `db:"order_no" json:"order_no"`
	IdempotencyKey string `db:"idempotency_key" json:"idempotency_key"`

	IsRefunded   bool                        `db:"is_refunded" json:"is_refunded"`
	RefundReason types.DrawEntryRefundReason `db:"refund_reason" json:"refund_reason,omitempty"`

	types.BaseModel
}

func (e *Entry) TableName() string {
	return "draw_entries"
}
