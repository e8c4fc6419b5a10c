package service

import (
	"testing"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/promocode"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/testutil"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceSuite struct {
	testutil.BaseServiceSuite
	service     CheckoutService
	memberships MembershipService
}

func TestCheckoutService(t *testing.T) {
	suite.Run(t, new(CheckoutServiceSuite))
}

func (s *CheckoutServiceSuite) SetupTest() {
	s.BaseServiceSuite.SetupTest()
	params := testServiceParams(&s.BaseServiceSuite)
	s.service = NewCheckoutService(params)
	s.memberships = NewMembershipService(params)
}

func (s *CheckoutServiceSuite) seedCatalog() {
	stores := s.GetStores()
	s.NoError(stores.UserRepo.Create(s.GetContext(), newTestUser("user-1")))
	s.NoError(stores.PlanRepo.Create(s.GetContext(), newTestPlan("plan-basic", types.PlanTierUniOne, 10, 5)))
	s.NoError(stores.PlanRepo.Create(s.GetContext(), newTestPlan("plan-premium", types.PlanTierUniPlus, 20, 12)))
	s.NoError(stores.BoostPackRepo.Create(s.GetContext(), newTestBoostPack("pack-small", 5, 20)))
}

func (s *CheckoutServiceSuite) subscribe(planID string) {
	_, err := s.memberships.Subscribe(s.GetContext(), &dto.SubscribeRequest{
		UserID: "user-1",
		PlanID: planID,
	})
	s.Require().NoError(err)
}

func (s *CheckoutServiceSuite) TestNewMembershipForUserWithoutMembership() {
	s.seedCatalog()

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID: "plan-basic",
	})
	s.NoError(err)
	s.Equal(types.CheckoutScenarioNewMembership, quote.Scenario)
	s.Equal("plan-basic", quote.PlanID)
	s.True(quote.FinalTotal.Equal(decimal.NewFromInt(10)))
}

func (s *CheckoutServiceSuite) TestNewMembershipForGuest() {
	s.seedCatalog()

	quote, err := s.service.ResolveScenario(s.GetContext(), "", &dto.ResolveCheckoutRequest{
		PlanID: "plan-basic",
	})
	s.NoError(err)
	s.Equal(types.CheckoutScenarioNewMembership, quote.Scenario)
}

func (s *CheckoutServiceSuite) TestMembershipPlusBoostSumsBothPrices() {
	s.seedCatalog()

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID:      "plan-basic",
		BoostPackID: "pack-small",
	})
	s.NoError(err)
	s.Equal(types.CheckoutScenarioMembershipPlusBoost, quote.Scenario)
	s.Equal("plan-basic", quote.PlanID)
	s.Equal("pack-small", quote.BoostPackID)
	s.True(quote.OriginalTotal.Equal(decimal.NewFromInt(15)))
	s.True(quote.FinalTotal.Equal(decimal.NewFromInt(15)))
}

func (s *CheckoutServiceSuite) TestBoostWithoutMembershipFoldsIntoCombinedPurchase() {
	s.seedCatalog()

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		BoostPackID: "pack-small",
	})
	s.NoError(err)
	s.Equal(types.CheckoutScenarioMembershipPlusBoost, quote.Scenario)
	s.True(quote.RequiresPlanSelection)
	s.True(quote.FinalTotal.Equal(decimal.NewFromInt(5)))
}

func (s *CheckoutServiceSuite) TestBoostOnlyForActiveMember() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		BoostPackID: "pack-small",
	})
	s.NoError(err)
	s.Equal(types.CheckoutScenarioBoostOnly, quote.Scenario)
	s.False(quote.RequiresPlanSelection)
	s.True(quote.FinalTotal.Equal(decimal.NewFromInt(5)))
}

func (s *CheckoutServiceSuite) TestPlanChangeQuotesZeroCharge() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID: "plan-premium",
	})
	s.NoError(err)
	s.Equal(types.CheckoutScenarioPlanChange, quote.Scenario)
	s.Equal(types.PendingChangeUpgrade, quote.ChangeKind)
	s.True(quote.FinalTotal.IsZero(), "plan changes apply at the next renewal, nothing is charged today")
}

func (s *CheckoutServiceSuite) TestPlanChangeDowngradeKind() {
	s.seedCatalog()
	s.subscribe("plan-premium")

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID: "plan-basic",
	})
	s.NoError(err)
	s.Equal(types.CheckoutScenarioPlanChange, quote.Scenario)
	s.Equal(types.PendingChangeDowngrade, quote.ChangeKind)
}

func (s *CheckoutServiceSuite) TestPlanChangeRejectsBoostCombo() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID:      "plan-premium",
		BoostPackID: "pack-small",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CheckoutServiceSuite) TestReactivationForCanceledMembership() {
	s.seedCatalog()
	s.subscribe("plan-basic")
	_, err := s.memberships.Cancel(s.GetContext(), "user-1")
	s.NoError(err)

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID: "plan-basic",
	})
	s.NoError(err)
	s.Equal(types.CheckoutScenarioReactivation, quote.Scenario)
	s.True(quote.FinalTotal.Equal(decimal.NewFromInt(10)))
}

func (s *CheckoutServiceSuite) TestSamePlanWithoutBoostIsRejected() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID: "plan-basic",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CheckoutServiceSuite) TestEmptyRequestIsRejected() {
	s.seedCatalog()

	_, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CheckoutServiceSuite) TestLockedUserCannotResolve() {
	s.seedCatalog()
	locked := newTestUser("user-locked")
	locked.IsLocked = true
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), locked))

	_, err := s.service.ResolveScenario(s.GetContext(), "user-locked", &dto.ResolveCheckoutRequest{
		PlanID: "plan-basic",
	})
	s.Error(err)
	s.ErrorIs(err, ierr.ErrPermissionDenied)
}

func (s *CheckoutServiceSuite) seedPromoCode(code string, amountOff int64) {
	s.NoError(s.GetStores().PromoCodeRepo.Create(s.GetContext(), &promocode.PromoCode{
		ID:           "promo-" + code,
		Code:         code,
		DiscountType: types.PromoDiscountTypeFlat,
		AmountOff:    decimal.NewFromInt(amountOff),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *CheckoutServiceSuite) TestPromoCodeDiscountsQuote() {
	s.seedCatalog()
	s.seedPromoCode("SAVE3", 3)

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID:    "plan-basic",
		PromoCode: "SAVE3",
	})
	s.NoError(err)
	s.Equal("SAVE3", quote.PromoCode)
	s.Empty(quote.PromoCodeError)
	s.True(quote.Discount.Equal(decimal.NewFromInt(3)))
	s.True(quote.FinalTotal.Equal(decimal.NewFromInt(7)))
}

func (s *CheckoutServiceSuite) TestInvalidPromoCodeIsClearedNotFatal() {
	s.seedCatalog()

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID:    "plan-basic",
		PromoCode: "NOPE",
	})
	s.NoError(err, "an invalid code clears, it never fails the resolution")
	s.Empty(quote.PromoCode)
	s.NotEmpty(quote.PromoCodeError)
	s.True(quote.Discount.IsZero())
	s.True(quote.FinalTotal.Equal(decimal.NewFromInt(10)), "full price without the discount")
}

func (s *CheckoutServiceSuite) TestExpiredPromoCodeIsCleared() {
	s.seedCatalog()
	expired := time.Now().UTC().Add(-time.Hour)
	s.NoError(s.GetStores().PromoCodeRepo.Create(s.GetContext(), &promocode.PromoCode{
		ID:           "promo-old",
		Code:         "OLD",
		RedeemBefore: &expired,
		DiscountType: types.PromoDiscountTypeFlat,
		AmountOff:    decimal.NewFromInt(5),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}))

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID:    "plan-basic",
		PromoCode: "OLD",
	})
	s.NoError(err)
	s.Empty(quote.PromoCode)
	s.NotEmpty(quote.PromoCodeError)
	s.True(quote.FinalTotal.Equal(decimal.NewFromInt(10)))
}

func (s *CheckoutServiceSuite) TestPromoCodeNotApplicableToZeroTotal() {
	s.seedCatalog()
	s.seedPromoCode("SAVE3", 3)
	s.subscribe("plan-basic")

	quote, err := s.service.ResolveScenario(s.GetContext(), "user-1", &dto.ResolveCheckoutRequest{
		PlanID:    "plan-premium",
		PromoCode: "SAVE3",
	})
	s.NoError(err)
	s.Equal(types.CheckoutScenarioPlanChange, quote.Scenario)
	s.Empty(quote.PromoCode)
	s.NotEmpty(quote.PromoCodeError)
}
