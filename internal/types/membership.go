package types

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/samber/lo"
)

// MembershipStatus is the status of a user's membership.
// Taking inspiration from Stripe's subscription statuses, trimmed to the
// states the entitlement engine actually transitions through.
type MembershipStatus string

const (
	MembershipStatusActive        MembershipStatus = "active"
	MembershipStatusPaused        MembershipStatus = "paused"
	MembershipStatusPastDue       MembershipStatus = "past_due"
	MembershipStatusPaymentFailed MembershipStatus = "payment_failed"
	MembershipStatusCanceled      MembershipStatus = "canceled"
)

func (s MembershipStatus) String() string {
	return string(s)
}

func (s MembershipStatus) Validate() error {
	allowed := []MembershipStatus{
		MembershipStatusActive,
		MembershipStatusPaused,
		MembershipStatusPastDue,
		MembershipStatusPaymentFailed,
		MembershipStatusCanceled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid membership status").
			WithHint("Invalid membership status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PendingChangeType identifies which kind of scheduled plan change is recorded
// against a membership. At most one may be pending at a time.
type PendingChangeType string

const (
	PendingChangeNone      PendingChangeType = "none"
	PendingChangeUpgrade   PendingChangeType = "upgrade"
	PendingChangeDowngrade PendingChangeType = "downgrade"
)
