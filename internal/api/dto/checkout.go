package dto

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
)

// ResolveCheckoutRequest carries the four independent signals the scenario
// resolver reconciles: target plan, target boost pack, the caller's
// membership (looked up server side), and the origin context.
type ResolveCheckoutRequest struct {
	PlanID      string               `json:"plan_id,omitempty"`
	BoostPackID string               `json:"boost_pack_id,omitempty"`
	PromoCode   string               `json:"promo_code,omitempty"`
	Origin      types.CheckoutOrigin `json:"origin,omitempty"`
}

func (r *ResolveCheckoutRequest) Validate() error {
	if r.PlanID == "" && r.BoostPackID == "" {
		return ierr.NewError("nothing to purchase").
			WithHint("Select a plan or a boost pack").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsDrawRedirect reports whether the request originated from a
// "membership required to enter draw" redirect
func (r *ResolveCheckoutRequest) IsDrawRedirect() bool {
	return r.Origin == types.CheckoutOriginDrawRedirect
}

// CheckoutQuoteResponse is the resolved purchase flow and the pricing the
// buyer sees before payment. The discount is recomputed from scratch on
// every resolution; a stale discount never survives a cart mutation.
type CheckoutQuoteResponse struct {
	Scenario    types.CheckoutScenario `json:"scenario"`
	PlanID      string                 `json:"plan_id,omitempty"`
	BoostPackID string                 `json:"boost_pack_id,omitempty"`

	// RequiresPlanSelection is set when a boost-only request was folded into
	// a combined purchase because the buyer holds no active membership.
	RequiresPlanSelection bool `json:"requires_plan_selection,omitempty"`

	// ChangeKind distinguishes upgrade from downgrade for plan_change
	ChangeKind types.PendingChangeType `json:"change_kind,omitempty"`

	OriginalTotal decimal.Decimal `json:"original_total"`
	Discount      decimal.Decimal `json:"discount"`
	FinalTotal    decimal.Decimal `json:"final_total"`

	// PromoCode echoes the applied code; empty when the code was cleared
	PromoCode string `json:"promo_code,omitempty"`
	// PromoCodeError carries the reason a submitted code was cleared
	PromoCodeError string `json:"promo_code_error,omitempty"`
}
