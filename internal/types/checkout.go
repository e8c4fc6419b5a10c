package types

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/samber/lo"
)

// CheckoutScenario is the resolved purchase flow for a checkout request.
// Exactly one scenario is chosen per request; every call site consumes the
// same resolution instead of re-deriving it from booleans.
type CheckoutScenario string

const (
	// CheckoutScenarioNewMembership is a first-time membership purchase
	CheckoutScenarioNewMembership CheckoutScenario = "new_membership"
	// CheckoutScenarioMembershipPlusBoost bundles a membership with a boost pack
	CheckoutScenarioMembershipPlusBoost CheckoutScenario = "membership_plus_boost"
	// CheckoutScenarioBoostOnly is a boost pack purchase by an active member
	CheckoutScenarioBoostOnly CheckoutScenario = "boost_only"
	// CheckoutScenarioPlanChange schedules an upgrade or downgrade of an active membership
	CheckoutScenarioPlanChange CheckoutScenario = "plan_change"
	// CheckoutScenarioReactivation re-subscribes a canceled or expired membership
	CheckoutScenarioReactivation CheckoutScenario = "reactivation"
)

func (s CheckoutScenario) String() string {
	return string(s)
}

func (s CheckoutScenario) Validate() error {
	allowed := []CheckoutScenario{
		CheckoutScenarioNewMembership,
		CheckoutScenarioMembershipPlusBoost,
		CheckoutScenarioBoostOnly,
		CheckoutScenarioPlanChange,
		CheckoutScenarioReactivation,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid checkout scenario").
			WithHintf("Unknown checkout scenario: %s", s).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CheckoutOrigin captures where the checkout request came from. A draw
// redirect means the user tried to enter a members-only draw without an
// active membership.
type CheckoutOrigin string

const (
	CheckoutOriginDirect       CheckoutOrigin = "direct"
	CheckoutOriginBoostBlocked CheckoutOrigin = "boost_blocked"
	CheckoutOriginDrawRedirect CheckoutOrigin = "draw_redirect"
)
