package service

import (
	"context"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/membership"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/plan"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// MembershipService owns the membership lifecycle state machine. Every
// mutating transition runs under the per-membership single-flight lock;
// concurrent callers fail fast with ErrConcurrentChange instead of queueing.
type MembershipService interface {
	Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.MembershipResponse, error)
	GetByUser(ctx context.Context, userID string) (*dto.MembershipResponse, error)
	ChangePlan(ctx context.Context, userID string, req *dto.ChangePlanRequest) (*dto.MembershipResponse, error)
	CancelPendingUpgrade(ctx context.Context, userID string) (*dto.MembershipResponse, error)
	Pause(ctx context.Context, userID string) (*dto.MembershipResponse, error)
	Resume(ctx context.Context, userID string) (*dto.MembershipResponse, error)
	Cancel(ctx context.Context, userID string) (*dto.MembershipResponse, error)
	Renew(ctx context.Context, membershipID string) (*dto.MembershipResponse, error)
	HandlePaymentFailure(ctx context.Context, userID string, finalAttempt bool) (*dto.MembershipResponse, error)
	HandlePaymentRecovery(ctx context.Context, userID string) (*dto.MembershipResponse, error)
}

type membershipService struct {
	ServiceParams
	ledger CreditLedgerService
	promos PromoCodeService
}

// NewMembershipService creates a new membership service
func NewMembershipService(params ServiceParams) MembershipService {
	return &membershipService{
		ServiceParams: params,
		ledger:        NewCreditLedgerService(params),
		promos:        NewPromoCodeService(params),
	}
}

// withChangeLock runs fn under the membership's advisory lock. The lock is
// released on every exit path; a stuck lock would permanently block the
// user's membership.
func (s *membershipService) withChangeLock(ctx context.Context, membershipID string, fn func() error) error {
	if err := s.MembershipRepo.AcquireChangeLock(ctx, membershipID); err != nil {
		return err
	}

	err := fn()

	if relErr := s.MembershipRepo.ReleaseChangeLock(ctx, membershipID); relErr != nil {
		s.Logger.Errorw("failed to release membership change lock",
			"membership_id", membershipID,
			"error", relErr,
		)
		if err == nil {
			err = relErr
		}
	}

	return err
}

func (s *membershipService) periodEnd(start time.Time) time.Time {
	return start.Add(time.Duration(s.Config.Billing.PeriodDays) * 24 * time.Hour)
}

// grantPeriodEntitlements grants the plan's credit allotment for the period
// starting at periodStart and records the grand-prize entries on the membership
func (s *membershipService) grantPeriodEntitlements(ctx context.Context, m *membership.Membership, p *plan.Plan, periodStart time.Time) error {
	if p.FreeCreditsPerPeriod > 0 {
		if _, err := s.ledger.Grant(ctx, m.UserID, types.CreditClassMembership, p.FreeCreditsPerPeriod, types.CreditReasonPeriodGrant, PeriodKey(periodStart)); err != nil {
			return err
		}
	}
	m.GrandPrizeEntries = p.GrandPrizeEntriesPerPeriod
	return nil
}

// Subscribe creates a membership after a successful payment confirmation.
// When the user already holds a canceled or expired membership the same row
// is reactivated with fresh-subscribe semantics; any stale pending change is
// discarded.
func (s *membershipService) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.MembershipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if u.IsLocked {
		return nil, ierr.NewError("account is locked").
			WithHint("Your account is locked; contact support").
			Mark(ierr.ErrPermissionDenied)
	}

	p, err := s.PlanRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing, err := s.MembershipRepo.GetByUserID(ctx, req.UserID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	if existing != nil && existing.IsActive(now) {
		return nil, ierr.NewError("membership already active").
			WithHint("You already have an active membership; change your plan instead").
			Mark(ierr.ErrAlreadyExists)
	}

	var m *membership.Membership
	if existing != nil {
		// Reactivation of a canceled or expired membership
		m = existing
		err = s.withChangeLock(ctx, m.ID, func() error {
			m.PlanID = p.ID
			m.MembershipStatus = types.MembershipStatusActive
			m.CancelAtPeriodEnd = false
			m.IsPaused = false
			m.PausedAt = nil
			m.PauseExpiresAt = nil
			m.ClearPendingChange()
			periodStart := now
			periodEndAt := s.periodEnd(periodStart)
			m.CurrentPeriodStart = &periodStart
			m.CurrentPeriodEnd = &periodEndAt
			m.UpdatedAt = now
			m.UpdatedBy = types.GetUserID(ctx)

			if err := s.grantPeriodEntitlements(ctx, m, p, periodStart); err != nil {
				return err
			}
			return s.MembershipRepo.Update(ctx, m)
		})
		if err != nil {
			return nil, err
		}
	} else {
		periodStart := now
		periodEndAt := s.periodEnd(periodStart)
		m = &membership.Membership{
			ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MEMBERSHIP),
			UserID:             req.UserID,
			PlanID:             p.ID,
			MembershipStatus:   types.MembershipStatusActive,
			CurrentPeriodStart: &periodStart,
			CurrentPeriodEnd:   &periodEndAt,
			BaseModel:          types.GetDefaultBaseModel(ctx),
		}
		if err := s.grantPeriodEntitlements(ctx, m, p, periodStart); err != nil {
			return nil, err
		}
		if err := s.MembershipRepo.Create(ctx, m); err != nil {
			return nil, err
		}
	}

	// Bundled boost pack purchase grants boost credits in the same confirmation
	if req.BoostPackID != "" {
		pack, err := s.BoostPackRepo.Get(ctx, req.BoostPackID)
		if err != nil {
			return nil, err
		}
		if _, err := s.ledger.Grant(ctx, req.UserID, types.CreditClassBoost, pack.Credits, types.CreditReasonBoostPurchase, ""); err != nil {
			return nil, err
		}
	}

	if req.PromoCode != "" {
		if err := s.promos.RecordRedemption(ctx, req.PromoCode); err != nil {
			s.Logger.Warnw("failed to record promo redemption",
				"code", req.PromoCode,
				"error", err,
			)
		}
	}

	s.Logger.Infow("membership subscribed",
		"user_id", req.UserID,
		"membership_id", m.ID,
		"plan_id", p.ID,
	)

	return dto.NewMembershipResponse(m), nil
}

// GetByUser returns the authoritative membership snapshot
func (s *membershipService) GetByUser(ctx context.Context, userID string) (*dto.MembershipResponse, error) {
	m, err := s.MembershipRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewMembershipResponse(m), nil
}

// ChangePlan schedules an upgrade or downgrade, inferred from the plan tier
// order. The plan swap happens at the next renewal; no charge occurs today.
func (s *membershipService) ChangePlan(ctx context.Context, userID string, req *dto.ChangePlanRequest) (*dto.MembershipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m, err := s.MembershipRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !m.IsActive(now) {
		return nil, ierr.NewError("membership is not active").
			WithHint("Plan changes require an active membership").
			WithReportableDetails(map[string]any{
				"membership_status": m.MembershipStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if m.PlanID == req.PlanID {
		return nil, ierr.NewError("already on requested plan").
			WithHint("You are already on this plan").
			Mark(ierr.ErrValidation)
	}

	newPlan, err := s.PlanRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	oldPlan, err := s.PlanRepo.Get(ctx, m.PlanID)
	if err != nil {
		return nil, err
	}

	isUpgrade := newPlan.IsUpgradeFrom(oldPlan)

	if pending := m.PendingChange(); pending != types.PendingChangeNone {
		return nil, ierr.NewError("a plan change is already pending").
			WithHintf("A pending %s is already scheduled; cancel it before requesting another change", pending).
			WithReportableDetails(map[string]any{
				"pending_change":  pending,
				"pending_plan_id": m.PendingPlanID(),
			}).
			Mark(ierr.ErrPendingChange)
	}

	err = s.withChangeLock(ctx, m.ID, func() error {
		if isUpgrade {
			m.PendingUpgradePlanID = &newPlan.ID
		} else {
			m.PendingDowngradePlanID = &newPlan.ID
		}
		m.UpdatedAt = now
		m.UpdatedBy = types.GetUserID(ctx)
		return s.MembershipRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("scheduled plan change",
		"user_id", userID,
		"membership_id", m.ID,
		"from_plan", oldPlan.ID,
		"to_plan", newPlan.ID,
		"is_upgrade", isUpgrade,
	)

	return dto.NewMembershipResponse(m), nil
}

// CancelPendingUpgrade discards a scheduled upgrade
func (s *membershipService) CancelPendingUpgrade(ctx context.Context, userID string) (*dto.MembershipResponse, error) {
	m, err := s.MembershipRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if m.PendingUpgradePlanID == nil {
		return nil, ierr.NewError("no pending upgrade").
			WithHint("There is no pending upgrade to cancel").
			Mark(ierr.ErrInvalidOperation)
	}

	err = s.withChangeLock(ctx, m.ID, func() error {
		m.PendingUpgradePlanID = nil
		m.UpdatedAt = time.Now().UTC()
		m.UpdatedBy = types.GetUserID(ctx)
		return s.MembershipRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	return dto.NewMembershipResponse(m), nil
}

// Pause suspends billing for a fixed window. Membership credits are zeroed
// immediately; no credits or entries are granted while paused. The pause
// auto-expires with the same effect as a manual resume.
func (s *membershipService) Pause(ctx context.Context, userID string) (*dto.MembershipResponse, error) {
	m, err := s.MembershipRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if m.IsPaused {
		return nil, ierr.NewError("membership already paused").
			WithHint("Your membership is already paused").
			Mark(ierr.ErrInvalidOperation)
	}
	switch m.MembershipStatus {
	case types.MembershipStatusActive:
	case types.MembershipStatusPastDue, types.MembershipStatusPaymentFailed:
		return nil, ierr.NewError("membership has unresolved payment").
			WithHint("Resolve the failed payment before pausing").
			Mark(ierr.ErrInvalidOperation)
	default:
		return nil, ierr.NewError("membership cannot be paused").
			WithHintf("A %s membership cannot be paused", m.MembershipStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	pauseExpires := now.Add(time.Duration(s.Config.Billing.PauseWindowDays) * 24 * time.Hour)

	err = s.withChangeLock(ctx, m.ID, func() error {
		m.MembershipStatus = types.MembershipStatusPaused
		m.IsPaused = true
		m.PausedAt = &now
		m.PauseExpiresAt = &pauseExpires
		m.ClearPendingChange()
		m.UpdatedAt = now
		m.UpdatedBy = types.GetUserID(ctx)

		if err := s.ledger.ResetMembershipCredits(ctx, userID, types.CreditReasonPauseReset); err != nil {
			return err
		}
		return s.MembershipRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("membership paused",
		"user_id", userID,
		"membership_id", m.ID,
		"pause_expires_at", pauseExpires,
	)

	return dto.NewMembershipResponse(m), nil
}

// Resume ends a pause; billing resumes at the next scheduled date
func (s *membershipService) Resume(ctx context.Context, userID string) (*dto.MembershipResponse, error) {
	m, err := s.MembershipRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !m.IsPaused {
		return nil, ierr.NewError("membership is not paused").
			WithHint("Only a paused membership can be resumed").
			Mark(ierr.ErrInvalidOperation)
	}

	err = s.withChangeLock(ctx, m.ID, func() error {
		m.MembershipStatus = types.MembershipStatusActive
		m.IsPaused = false
		m.PausedAt = nil
		m.PauseExpiresAt = nil
		m.UpdatedAt = time.Now().UTC()
		m.UpdatedBy = types.GetUserID(ctx)
		return s.MembershipRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("membership resumed",
		"user_id", userID,
		"membership_id", m.ID,
	)

	return dto.NewMembershipResponse(m), nil
}

// Cancel revokes entitlements immediately: membership credits are zeroed,
// all non-refunded draw entries are invalidated, and boost purchases and
// draw entries are blocked, even when the paid period has not lapsed.
func (s *membershipService) Cancel(ctx context.Context, userID string) (*dto.MembershipResponse, error) {
	m, err := s.MembershipRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if m.MembershipStatus == types.MembershipStatusCanceled {
		return nil, ierr.NewError("membership already canceled").
			WithHint("Your membership is already canceled").
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	err = s.withChangeLock(ctx, m.ID, func() error {
		m.MembershipStatus = types.MembershipStatusCanceled
		m.CancelAtPeriodEnd = m.CurrentPeriodEnd != nil && m.CurrentPeriodEnd.After(now)
		m.IsPaused = false
		m.PausedAt = nil
		m.PauseExpiresAt = nil
		m.ClearPendingChange()
		m.GrandPrizeEntries = 0
		m.UpdatedAt = now
		m.UpdatedBy = types.GetUserID(ctx)

		if err := s.ledger.ResetMembershipCredits(ctx, userID, types.CreditReasonCancelReset); err != nil {
			return err
		}

		invalidated, err := s.DrawRepo.InvalidateEntriesByUser(ctx, userID, types.DrawEntryRefundReasonMembershipCanceled)
		if err != nil {
			return err
		}
		s.Logger.Infow("invalidated draw entries on cancel",
			"user_id", userID,
			"count", invalidated,
		)

		return s.MembershipRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("membership canceled",
		"user_id", userID,
		"membership_id", m.ID,
		"cancel_at_period_end", m.CancelAtPeriodEnd,
	)

	return dto.NewMembershipResponse(m), nil
}

// Renew applies any pending plan change, zeroes the old period's membership
// credits, grants the (possibly new) plan's allotment and grand-prize
// entries, and advances the billing period. Called after a successful
// renewal charge.
func (s *membershipService) Renew(ctx context.Context, membershipID string) (*dto.MembershipResponse, error) {
	m, err := s.MembershipRepo.Get(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	if m.MembershipStatus != types.MembershipStatusActive {
		return nil, ierr.NewError("only active memberships renew").
			WithHintf("A %s membership cannot renew", m.MembershipStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	err = s.withChangeLock(ctx, m.ID, func() error {
		return s.applyRenewal(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	return dto.NewMembershipResponse(m), nil
}

// applyRenewal is the shared renewal core used by Renew and payment
// recovery. Caller must hold the change lock.
func (s *membershipService) applyRenewal(ctx context.Context, m *membership.Membership) error {
	now := time.Now().UTC()

	resetReason := types.CreditReasonPeriodReset
	if pendingID := m.PendingPlanID(); pendingID != nil {
		m.PlanID = *pendingID
		m.ClearPendingChange()
		resetReason = types.CreditReasonPlanChangeReset
	}

	p, err := s.PlanRepo.Get(ctx, m.PlanID)
	if err != nil {
		return err
	}

	if err := s.ledger.ResetMembershipCredits(ctx, m.UserID, resetReason); err != nil {
		return err
	}

	periodStart := now
	if m.CurrentPeriodEnd != nil && m.CurrentPeriodEnd.After(now.Add(-24*time.Hour)) {
		// Renewals processed on schedule continue from the previous period end
		periodStart = *m.CurrentPeriodEnd
	}
	periodEndAt := s.periodEnd(periodStart)
	m.CurrentPeriodStart = &periodStart
	m.CurrentPeriodEnd = &periodEndAt
	m.UpdatedAt = now

	if err := s.grantPeriodEntitlements(ctx, m, p, periodStart); err != nil {
		return err
	}

	s.Logger.Infow("membership renewed",
		"membership_id", m.ID,
		"user_id", m.UserID,
		"plan_id", m.PlanID,
		"period_end", periodEndAt,
	)

	return s.MembershipRepo.Update(ctx, m)
}

// HandlePaymentFailure moves the membership to past_due, or payment_failed
// when the provider has exhausted its retries. New-period credits are
// withheld; existing access is preserved until the current period end.
func (s *membershipService) HandlePaymentFailure(ctx context.Context, userID string, finalAttempt bool) (*dto.MembershipResponse, error) {
	m, err := s.MembershipRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := types.MembershipStatusPastDue
	if finalAttempt {
		status = types.MembershipStatusPaymentFailed
	}

	err = s.withChangeLock(ctx, m.ID, func() error {
		m.MembershipStatus = status
		m.UpdatedAt = time.Now().UTC()
		return s.MembershipRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Warnw("membership payment failed",
		"user_id", userID,
		"membership_id", m.ID,
		"status", status,
	)

	return dto.NewMembershipResponse(m), nil
}

// HandlePaymentRecovery completes the renewal that the failed payment
// withheld: the membership returns to active and the period credits are
// granted.
func (s *membershipService) HandlePaymentRecovery(ctx context.Context, userID string) (*dto.MembershipResponse, error) {
	m, err := s.MembershipRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if m.MembershipStatus != types.MembershipStatusPastDue && m.MembershipStatus != types.MembershipStatusPaymentFailed {
		return nil, ierr.NewError("membership has no failed payment").
			WithHint("Payment recovery applies only to past due memberships").
			Mark(ierr.ErrInvalidOperation)
	}

	err = s.withChangeLock(ctx, m.ID, func() error {
		m.MembershipStatus = types.MembershipStatusActive
		return s.applyRenewal(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("membership payment recovered",
		"user_id", userID,
		"membership_id", m.ID,
	)

	return dto.NewMembershipResponse(m), nil
}
