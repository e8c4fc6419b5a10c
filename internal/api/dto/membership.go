package dto

import (
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/membership"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// SubscribeRequest creates a membership after a successful payment
// confirmation. BoostPackID is set for combined membership+boost purchases.
type SubscribeRequest struct {
	UserID         string `json:"user_id"`
	PlanID         string `json:"plan_id" binding:"required"`
	BoostPackID    string `json:"boost_pack_id,omitempty"`
	PromoCode      string `json:"promo_code,omitempty"`
	IdempotencyKey string `json:"idempotency_key"`
}

func (r *SubscribeRequest) Validate() error {
	if r.PlanID == "" {
		return ierr.NewError("plan_id is required").
			WithHint("Select a plan to subscribe").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ChangePlanRequest schedules a plan change. Upgrade vs downgrade is
// inferred from the tier order, never supplied by the caller.
type ChangePlanRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

func (r *ChangePlanRequest) Validate() error {
	if r.PlanID == "" {
		return ierr.NewError("plan_id is required").
			WithHint("Select a plan to change to").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MembershipResponse is the full authoritative membership snapshot. Every
// mutating endpoint returns it and clients treat it as a total replacement,
// never a merge.
type MembershipResponse struct {
	ID                     string                 `json:"id"`
	UserID                 string                 `json:"user_id"`
	PlanID                 string                 `json:"plan_id"`
	MembershipStatus       types.MembershipStatus `json:"membership_status"`
	CancelAtPeriodEnd      bool                   `json:"cancel_at_period_end"`
	CurrentPeriodStart     *time.Time             `json:"current_period_start,omitempty"`
	CurrentPeriodEnd       *time.Time             `json:"current_period_end,omitempty"`
	IsPaused               bool                   `json:"is_paused"`
	PausedAt               *time.Time             `json:"paused_at,omitempty"`
	PauseExpiresAt         *time.Time             `json:"pause_expires_at,omitempty"`
	PendingUpgradePlanID   *string                `json:"pending_upgrade_plan_id,omitempty"`
	PendingDowngradePlanID *string                `json:"pending_downgrade_plan_id,omitempty"`
	IsProcessingChange     bool                   `json:"is_processing_change"`
	GrandPrizeEntries      int64                  `json:"grand_prize_entries"`
	IsActive               bool                   `json:"is_active"`
}

// NewMembershipResponse builds the snapshot from the domain model
func NewMembershipResponse(m *membership.Membership) *MembershipResponse {
	if m == nil {
		return nil
	}
	return &MembershipResponse{
		ID:                     m.ID,
		UserID:                 m.UserID,
		PlanID:                 m.PlanID,
		MembershipStatus:       m.MembershipStatus,
		CancelAtPeriodEnd:      m.CancelAtPeriodEnd,
		CurrentPeriodStart:     m.CurrentPeriodStart,
		CurrentPeriodEnd:       m.CurrentPeriodEnd,
		IsPaused:               m.IsPaused,
		PausedAt:               m.PausedAt,
		PauseExpiresAt:         m.PauseExpiresAt,
		PendingUpgradePlanID:   m.PendingUpgradePlanID,
		PendingDowngradePlanID: m.PendingDowngradePlanID,
		IsProcessingChange:     m.IsProcessingChange,
		GrandPrizeEntries:      m.GrandPrizeEntries,
		IsActive:               m.IsActive(time.Now().UTC()),
	}
}
