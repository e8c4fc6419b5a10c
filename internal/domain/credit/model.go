package credit

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// LedgerEntry is an immutable append-only record of a credit grant or spend.
// Membership-class entries are tagged with the billing period they belong to;
// they are zeroed (never carried forward) when a new period starts, a plan
// changes, a pause begins, or the membership is canceled.
type LedgerEntry struct {
	ID           string             `db:"id" json:"id"`
	UserID       string             `db:"user_id" json:"user_id"`
	Class        types.CreditClass  `db:"class" json:"class"`
	Amount       int64              `db:"amount" json:"amount"` // signed
	Reason       types.CreditReason `db:"reason" json:"reason"`
	BalanceAfter int64              `db:"balance_after" json:"balance_after"`

	// PeriodKey tags membership-class entries with their billing period.
	// Empty for boost-class entries.
	PeriodKey string `db:"period_key" json:"period_key,omitempty"`

	Description    string `db:"description" json:"description,omitempty"`
	IdempotencyKey string `db:"idempotency_key" json:"idempotency_key,omitempty"`

	types.BaseModel
}

func (e *LedgerEntry) TableName() string {
	return "credit_ledger_entries"
}

func (e *LedgerEntry) Validate() error {
	if err := e.Class.Validate(); err != nil {
		return err
	}
	if e.BalanceAfter < 0 {
		return ierr.NewError("ledger entry would leave a negative balance").
			WithHint("Credit balances can never go negative").
			WithReportableDetails(map[string]any{
				"user_id":       e.UserID,
				"class":         e.Class,
				"amount":        e.Amount,
				"balance_after": e.BalanceAfter,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
