package membership

import (
	"time"

	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// Membership is the single membership record a user may hold. It is created
// on the first successful membership payment and mutated by every state
// machine transition. On cancellation the row is retained for billing history
// with status canceled and entitlements stripped.
type Membership struct {
	ID     string `db:"id" json:"id"`
	UserID string `db:"user_id" json:"user_id"`
	PlanID string `db:"plan_id" json:"plan_id"`

	MembershipStatus   types.MembershipStatus `db:"membership_status" json:"membership_status"`
	CancelAtPeriodEnd  bool                   `db:"cancel_at_period_end" json:"cancel_at_period_end"`
	CurrentPeriodStart *time.Time             `db:"current_period_start" json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time             `db:"current_period_end" json:"current_period_end,omitempty"`

	// Pause window. A pause auto-expires after a fixed number of days and
	// resumes the membership with the same effect as a manual resume.
	IsPaused       bool       `db:"is_paused" json:"is_paused"`
	PausedAt       *time.Time `db:"paused_at" json:"paused_at,omitempty"`
	PauseExpiresAt *time.Time `db:"pause_expires_at" json:"pause_expires_at,omitempty"`

	// Scheduled plan changes, applied at the next renewal. At most one of the
	// two may be set, and only while the membership is active.
	PendingUpgradePlanID   *string `db:"pending_upgrade_plan_id" json:"pending_upgrade_plan_id,omitempty"`
	PendingDowngradePlanID *string `db:"pending_downgrade_plan_id" json:"pending_downgrade_plan_id,omitempty"`

	// IsProcessingChange is the advisory single-flight lock over mutating
	// transitions. Checked-and-set atomically by the repository; any caller
	// observing it true fails fast instead of queueing.
	IsProcessingChange bool `db:"is_processing_change" json:"is_processing_change"`

	// GrandPrizeEntries is the bonus entitlement granted for the current period
	GrandPrizeEntries int64 `db:"grand_prize_entries" json:"grand_prize_entries"`

	types.BaseModel
}

func (m *Membership) TableName() string {
	return "memberships"
}

// Validate enforces the pending-change invariant
func (m *Membership) Validate() error {
	if err := m.MembershipStatus.Validate(); err != nil {
		return err
	}
	if m.PendingUpgradePlanID != nil && m.PendingDowngradePlanID != nil {
		return ierr.NewError("both upgrade and downgrade pending").
			WithHint("A membership can have at most one pending plan change").
			Mark(ierr.ErrValidation)
	}
	if (m.PendingUpgradePlanID != nil || m.PendingDowngradePlanID != nil) &&
		m.MembershipStatus != types.MembershipStatusActive {
		return ierr.NewError("pending plan change on non-active membership").
			WithHint("Plan changes can only be pending on an active membership").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsActive is the single authoritative definition of "active" shared by the
// checkout resolver and the draw entry guard: status active, not paused, and
// a current period end in the future.
func (m *Membership) IsActive(now time.Time) bool {
	return m.MembershipStatus == types.MembershipStatusActive &&
		!m.IsPaused &&
		m.CurrentPeriodEnd != nil &&
		m.CurrentPeriodEnd.After(now)
}

// IsExpired reports whether the membership exists but its period has lapsed
func (m *Membership) IsExpired(now time.Time) bool {
	return m.CurrentPeriodEnd == nil || !m.CurrentPeriodEnd.After(now)
}

// PendingChange returns which kind of plan change, if any, is scheduled
func (m *Membership) PendingChange() types.PendingChangeType {
	switch {
	case m.PendingUpgradePlanID != nil:
		return types.PendingChangeUpgrade
	case m.PendingDowngradePlanID != nil:
		return types.PendingChangeDowngrade
	default:
		return types.PendingChangeNone
	}
}

// PendingPlanID returns the plan id of the scheduled change, if any
func (m *Membership) PendingPlanID() *string {
	if m.PendingUpgradePlanID != nil {
		return m.PendingUpgradePlanID
	}
	return m.PendingDowngradePlanID
}

// ClearPendingChange discards any scheduled plan change
func (m *Membership) ClearPendingChange() {
	m.PendingUpgradePlanID = nil
	m.PendingDowngradePlanID = nil
}

// CanBuyBoostPack mirrors IsActive; buying a boost pack always requires an
// active membership
func (m *Membership) CanBuyBoostPack(now time.Time) bool {
	return m.IsActive(now)
}
