package renewal

import (
	"time"

	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
)

// Record is the historical record of a billing-period renewal attempt.
// Append-only; never mutated after reaching a terminal status.
type Record struct {
	ID           string `db:"id" json:"id"`
	MembershipID string `db:"membership_id" json:"membership_id"`
	UserID       string `db:"user_id" json:"user_id"`
	PlanID       string `db:"plan_id" json:"plan_id"`

	PeriodStart time.Time `db:"period_start" json:"period_start"`
	PeriodEnd   time.Time `db:"period_end" json:"period_end"`

	RenewalStatus            types.RenewalStatus `db:"renewal_status" json:"renewal_status"`
	Amount                   decimal.Decimal     `db:"amount" json:"amount"`
	CreditsGranted           int64               `db:"credits_granted" json:"credits_granted"`
	GrandPrizeEntriesGranted int64               `db:"grand_prize_entries_granted" json:"grand_prize_entries_granted"`
	FailureReason            string              `db:"failure_reason" json:"failure_reason,omitempty"`
	IdempotencyKey           string              `db:"idempotency_key" json:"idempotency_key,omitempty"`

	types.BaseModel
}

func (r *Record) TableName() string {
	return "renewal_records"
}

func (r *Record) Validate() error {
	if err := r.RenewalStatus.Validate(); err != nil {
		return err
	}
	if !r.PeriodEnd.After(r.PeriodStart) {
		return ierr.NewError("renewal period end must be after period start").
			WithHint("Invalid renewal period").
			Mark(ierr.ErrValidation)
	}
	return nil
}
