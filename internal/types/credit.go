package types

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/samber/lo"
)

// CreditClass separates the two credit pools a user holds. Membership credits
// are period-scoped and reset with the billing cycle; boost credits never expire.
type CreditClass string

const (
	CreditClassMembership CreditClass = "membership"
	CreditClassBoost      CreditClass = "boost"
)

func (c CreditClass) String() string {
	return string(c)
}

func (c CreditClass) Validate() error {
	allowed := []CreditClass{CreditClassMembership, CreditClassBoost}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid credit class").
			WithHintf("Unknown credit class: %s", c).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CreditReason records why a ledger entry was appended
type CreditReason string

const (
	CreditReasonPeriodGrant       CreditReason = "period_grant"
	CreditReasonBoostPurchase     CreditReason = "boost_purchase"
	CreditReasonDrawEntry         CreditReason = "draw_entry"
	CreditReasonDrawEntryRollback CreditReason = "draw_entry_rollback"
	CreditReasonPeriodReset       CreditReason = "period_reset"
	CreditReasonPauseReset        CreditReason = "pause_reset"
	CreditReasonCancelReset       CreditReason = "cancel_reset"
	CreditReasonPlanChangeReset   CreditReason = "plan_change_reset"
	CreditReasonPaymentRecovery   CreditReason = "payment_recovery"
	CreditReasonManualAdjustment  CreditReason = "manual_adjustment"
)
