package service

import (
	"context"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/membership"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
)

// CheckoutService resolves what a buyer is actually purchasing from the
// combination of selected plan, selected boost pack, current membership
// state, and checkout origin. Resolution is pure: it never mutates state.
type CheckoutService interface {
	ResolveScenario(ctx context.Context, userID string, req *dto.ResolveCheckoutRequest) (*dto.CheckoutQuoteResponse, error)
}

type checkoutService struct {
	ServiceParams
	promos PromoCodeService
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(params ServiceParams) CheckoutService {
	return &checkoutService{
		ServiceParams: params,
		promos:        NewPromoCodeService(params),
	}
}

// ResolveScenario reconciles the request into one of the five checkout
// scenarios and prices it. Guests resolve only the scenarios that create a
// new membership; everything else requires an authenticated caller.
func (s *checkoutService) ResolveScenario(ctx context.Context, userID string, req *dto.ResolveCheckoutRequest) (*dto.CheckoutQuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var m *membership.Membership
	if userID != "" {
		u, err := s.UserRepo.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if u.IsLocked {
			return nil, ierr.NewError("account is locked").
				WithHint("Your account is locked; contact support").
				Mark(ierr.ErrPermissionDenied)
		}

		m, err = s.MembershipRepo.GetByUserID(ctx, userID)
		if err != nil && !ierr.IsNotFound(err) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	hasActive := m != nil && m.IsActive(now)

	quote, err := s.resolve(ctx, m, hasActive, now, req)
	if err != nil {
		return nil, err
	}

	s.applyPromoCode(ctx, quote, req.PromoCode)

	s.Logger.Infow("resolved checkout scenario",
		"user_id", userID,
		"scenario", quote.Scenario,
		"plan_id", quote.PlanID,
		"boost_pack_id", quote.BoostPackID,
		"final_total", quote.FinalTotal.String(),
	)

	return quote, nil
}

func (s *checkoutService) resolve(ctx context.Context, m *membership.Membership, hasActive bool, now time.Time, req *dto.ResolveCheckoutRequest) (*dto.CheckoutQuoteResponse, error) {
	if hasActive {
		return s.resolveForMember(ctx, m, req)
	}
	return s.resolveForNonMember(ctx, m, now, req)
}

// resolveForMember handles callers with an active membership: boost-only
// purchases and scheduled plan changes.
func (s *checkoutService) resolveForMember(ctx context.Context, m *membership.Membership, req *dto.ResolveCheckoutRequest) (*dto.CheckoutQuoteResponse, error) {
	if req.PlanID != "" && req.PlanID != m.PlanID {
		if req.BoostPackID != "" {
			return nil, ierr.NewError("plan change cannot include a boost pack").
				WithHint("Schedule the plan change first, then buy the boost pack separately").
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

		kind := types.PendingChangeDowngrade
		if newPlan.IsUpgradeFrom(oldPlan) {
			kind = types.PendingChangeUpgrade
		}

		// Plan changes apply at the next renewal; nothing is charged today
		return &dto.CheckoutQuoteResponse{
			Scenario:      types.CheckoutScenarioPlanChange,
			PlanID:        newPlan.ID,
			ChangeKind:    kind,
			OriginalTotal: decimal.Zero,
			Discount:      decimal.Zero,
			FinalTotal:    decimal.Zero,
		}, nil
	}

	if req.BoostPackID == "" {
		return nil, ierr.NewError("already on requested plan").
			WithHint("You already have this plan; select a different plan or a boost pack").
			Mark(ierr.ErrValidation)
	}

	if !m.CanBuyBoostPack(time.Now().UTC()) {
		return nil, ierr.NewError("membership does not permit boost purchases").
			WithHint("Resolve your membership status before buying boost credits").
			Mark(ierr.ErrInvalidOperation)
	}

	pack, err := s.BoostPackRepo.Get(ctx, req.BoostPackID)
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutQuoteResponse{
		Scenario:      types.CheckoutScenarioBoostOnly,
		BoostPackID:   pack.ID,
		OriginalTotal: pack.Price,
		Discount:      decimal.Zero,
		FinalTotal:    pack.Price,
	}, nil
}

// resolveForNonMember handles callers without an active membership: new
// subscriptions, reactivations, and boost requests folded into a combined
// purchase.
func (s *checkoutService) resolveForNonMember(ctx context.Context, m *membership.Membership, now time.Time, req *dto.ResolveCheckoutRequest) (*dto.CheckoutQuoteResponse, error) {
	isReactivation := m != nil && !m.IsActive(now)

	// Boost pack without a plan: the purchase is folded into a combined
	// membership+boost checkout and the buyer still has to pick a plan.
	if req.PlanID == "" {
		var quote = &dto.CheckoutQuoteResponse{
			Scenario:              types.CheckoutScenarioMembershipPlusBoost,
			BoostPackID:           req.BoostPackID,
			RequiresPlanSelection: true,
			OriginalTotal:         decimal.Zero,
			Discount:              decimal.Zero,
			FinalTotal:            decimal.Zero,
		}
		pack, err := s.BoostPackRepo.Get(ctx, req.BoostPackID)
		if err != nil {
			return nil, err
		}
		quote.OriginalTotal = pack.Price
		quote.FinalTotal = pack.Price
		return quote, nil
	}

	p, err := s.PlanRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	total := p.PriceMonthly
	scenario := types.CheckoutScenarioNewMembership
	if isReactivation {
		scenario = types.CheckoutScenarioReactivation
	}

	quote := &dto.CheckoutQuoteResponse{
		Scenario:      scenario,
		PlanID:        p.ID,
		OriginalTotal: total,
		Discount:      decimal.Zero,
		FinalTotal:    total,
	}

	if req.BoostPackID != "" {
		pack, err := s.BoostPackRepo.Get(ctx, req.BoostPackID)
		if err != nil {
			return nil, err
		}
		quote.Scenario = types.CheckoutScenarioMembershipPlusBoost
		quote.BoostPackID = pack.ID
		quote.OriginalTotal = total.Add(pack.Price)
		quote.FinalTotal = quote.OriginalTotal
	}

	return quote, nil
}

// applyPromoCode revalidates the submitted code against the freshly priced
// quote. Any failure clears the code and surfaces the reason; a stale or
// invalid discount never sticks to the quote.
func (s *checkoutService) applyPromoCode(ctx context.Context, quote *dto.CheckoutQuoteResponse, code string) {
	if code == "" {
		return
	}

	if quote.FinalTotal.IsZero() {
		quote.PromoCodeError = "promo codes do not apply to this purchase"
		return
	}

	res, err := s.promos.Validate(ctx, &dto.ValidatePromoCodeRequest{
		Code:        code,
		OrderAmount: quote.OriginalTotal,
	})
	if err != nil {
		s.Logger.Infow("cleared promo code from quote",
			"code", code,
			"error", err,
		)
		quote.PromoCodeError = ierr.Hint(err)
		return
	}

	quote.PromoCode = res.Code
	quote.Discount = res.Discount
	quote.FinalTotal = res.FinalAmount
}
