package service

import (
	"testing"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/draw"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/testutil"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/stretchr/testify/suite"
)

type MembershipServiceSuite struct {
	testutil.BaseServiceSuite
	service MembershipService
	ledger  CreditLedgerService
}

func TestMembershipService(t *testing.T) {
	suite.Run(t, new(MembershipServiceSuite))
}

func (s *MembershipServiceSuite) SetupTest() {
	s.BaseServiceSuite.SetupTest()
	params := testServiceParams(&s.BaseServiceSuite)
	s.service = NewMembershipService(params)
	s.ledger = NewCreditLedgerService(params)
}

func (s *MembershipServiceSuite) seedCatalog() {
	stores := s.GetStores()
	s.NoError(stores.UserRepo.Create(s.GetContext(), newTestUser("user-1")))
	s.NoError(stores.PlanRepo.Create(s.GetContext(), newTestPlan("plan-basic", types.PlanTierUniOne, 10, 5)))
	s.NoError(stores.PlanRepo.Create(s.GetContext(), newTestPlan("plan-premium", types.PlanTierUniPlus, 20, 12)))
	s.NoError(stores.BoostPackRepo.Create(s.GetContext(), newTestBoostPack("pack-small", 5, 20)))
}

func (s *MembershipServiceSuite) subscribe(planID string) *dto.MembershipResponse {
	resp, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{
		UserID: "user-1",
		PlanID: planID,
	})
	s.Require().NoError(err)
	return resp
}

func (s *MembershipServiceSuite) TestSubscribeGrantsPeriodEntitlements() {
	s.seedCatalog()

	resp := s.subscribe("plan-basic")
	s.Equal(types.MembershipStatusActive, resp.MembershipStatus)
	s.True(resp.IsActive)
	s.Equal(int64(1), resp.GrandPrizeEntries)
	s.NotNil(resp.CurrentPeriodEnd)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(5), bal.MembershipCredits)
}

func (s *MembershipServiceSuite) TestSubscribeWithBundledBoostPack() {
	s.seedCatalog()

	_, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{
		UserID:      "user-1",
		PlanID:      "plan-basic",
		BoostPackID: "pack-small",
	})
	s.NoError(err)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(5), bal.MembershipCredits)
	s.Equal(int64(20), bal.BoostCredits)
}

func (s *MembershipServiceSuite) TestSubscribeRejectsActiveMembership() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{
		UserID: "user-1",
		PlanID: "plan-premium",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *MembershipServiceSuite) TestSubscribeRejectsLockedUser() {
	s.seedCatalog()
	locked := newTestUser("user-locked")
	locked.IsLocked = true
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), locked))

	_, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{
		UserID: "user-locked",
		PlanID: "plan-basic",
	})
	s.Error(err)
	s.ErrorIs(err, ierr.ErrPermissionDenied)
}

func (s *MembershipServiceSuite) TestSubscribeReactivatesCanceledMembership() {
	s.seedCatalog()
	first := s.subscribe("plan-basic")

	_, err := s.service.Cancel(s.GetContext(), "user-1")
	s.NoError(err)

	resp, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{
		UserID: "user-1",
		PlanID: "plan-premium",
	})
	s.NoError(err)
	s.Equal(first.ID, resp.ID, "reactivation reuses the membership row")
	s.Equal("plan-premium", resp.PlanID)
	s.Equal(types.MembershipStatusActive, resp.MembershipStatus)
	s.False(resp.CancelAtPeriodEnd)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(12), bal.MembershipCredits)
}

func (s *MembershipServiceSuite) TestChangePlanSchedulesUpgrade() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	resp, err := s.service.ChangePlan(s.GetContext(), "user-1", &dto.ChangePlanRequest{PlanID: "plan-premium"})
	s.NoError(err)
	s.Require().NotNil(resp.PendingUpgradePlanID)
	s.Equal("plan-premium", *resp.PendingUpgradePlanID)
	s.Nil(resp.PendingDowngradePlanID)
	// Still on the old plan until renewal
	s.Equal("plan-basic", resp.PlanID)
}

func (s *MembershipServiceSuite) TestChangePlanSchedulesDowngrade() {
	s.seedCatalog()
	s.subscribe("plan-premium")

	resp, err := s.service.ChangePlan(s.GetContext(), "user-1", &dto.ChangePlanRequest{PlanID: "plan-basic"})
	s.NoError(err)
	s.Require().NotNil(resp.PendingDowngradePlanID)
	s.Equal("plan-basic", *resp.PendingDowngradePlanID)
	s.Nil(resp.PendingUpgradePlanID)
}

func (s *MembershipServiceSuite) TestChangePlanRejectsSecondPendingChange() {
	s.seedCatalog()
	s.NoError(s.GetStores().PlanRepo.Create(s.GetContext(), newTestPlan("plan-elite", types.PlanTierElite, 50, 30)))
	s.subscribe("plan-basic")

	_, err := s.service.ChangePlan(s.GetContext(), "user-1", &dto.ChangePlanRequest{PlanID: "plan-premium"})
	s.NoError(err)

	_, err = s.service.ChangePlan(s.GetContext(), "user-1", &dto.ChangePlanRequest{PlanID: "plan-elite"})
	s.Error(err)
	s.True(ierr.IsPendingChange(err))
}

func (s *MembershipServiceSuite) TestChangePlanRejectsSamePlan() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.ChangePlan(s.GetContext(), "user-1", &dto.ChangePlanRequest{PlanID: "plan-basic"})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *MembershipServiceSuite) TestCancelPendingUpgrade() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.ChangePlan(s.GetContext(), "user-1", &dto.ChangePlanRequest{PlanID: "plan-premium"})
	s.NoError(err)

	resp, err := s.service.CancelPendingUpgrade(s.GetContext(), "user-1")
	s.NoError(err)
	s.Nil(resp.PendingUpgradePlanID)

	_, err = s.service.CancelPendingUpgrade(s.GetContext(), "user-1")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MembershipServiceSuite) TestConcurrentChangeFailsFast() {
	s.seedCatalog()
	resp := s.subscribe("plan-basic")

	// Simulate another in-flight transition holding the lock
	s.NoError(s.GetStores().MembershipRepo.AcquireChangeLock(s.GetContext(), resp.ID))

	_, err := s.service.Pause(s.GetContext(), "user-1")
	s.Error(err)
	s.True(ierr.IsConcurrentChange(err))
}

func (s *MembershipServiceSuite) TestPauseZeroesMembershipCreditsOnly() {
	s.seedCatalog()
	s.subscribe("plan-basic")
	_, err := s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassBoost, 8, types.CreditReasonBoostPurchase, "")
	s.NoError(err)

	resp, err := s.service.Pause(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(types.MembershipStatusPaused, resp.MembershipStatus)
	s.True(resp.IsPaused)
	s.NotNil(resp.PauseExpiresAt)
	s.False(resp.IsActive)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(0), bal.MembershipCredits)
	s.Equal(int64(8), bal.BoostCredits)
}

func (s *MembershipServiceSuite) TestPauseDiscardsPendingChange() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.ChangePlan(s.GetContext(), "user-1", &dto.ChangePlanRequest{PlanID: "plan-premium"})
	s.NoError(err)

	resp, err := s.service.Pause(s.GetContext(), "user-1")
	s.NoError(err)
	s.Nil(resp.PendingUpgradePlanID)
	s.Nil(resp.PendingDowngradePlanID)
}

func (s *MembershipServiceSuite) TestPauseRejectsAlreadyPaused() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.Pause(s.GetContext(), "user-1")
	s.NoError(err)

	_, err = s.service.Pause(s.GetContext(), "user-1")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MembershipServiceSuite) TestResumeRestoresActiveStatus() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.Pause(s.GetContext(), "user-1")
	s.NoError(err)

	resp, err := s.service.Resume(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(types.MembershipStatusActive, resp.MembershipStatus)
	s.False(resp.IsPaused)
	s.Nil(resp.PauseExpiresAt)
	s.True(resp.IsActive)
}

func (s *MembershipServiceSuite) TestResumeRejectsUnpausedMembership() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.Resume(s.GetContext(), "user-1")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MembershipServiceSuite) TestCancelRevokesEntitlementsImmediately() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	// An active draw entry that must be invalidated on cancel
	entry := &draw.Entry{
		ID:        "entry-1",
		UserID:    "user-1",
		DrawID:    "draw-1",
		Source:    types.CreditClassMembership,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().DrawRepo.CreateEntry(s.GetContext(), entry))

	resp, err := s.service.Cancel(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(types.MembershipStatusCanceled, resp.MembershipStatus)
	s.True(resp.CancelAtPeriodEnd, "period end is still in the future")
	s.Equal(int64(0), resp.GrandPrizeEntries)
	s.False(resp.IsActive)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(0), bal.MembershipCredits)

	_, err = s.GetStores().DrawRepo.FindActiveEntry(s.GetContext(), "user-1", "draw-1")
	s.Error(err)
	s.True(ierr.IsNotFound(err), "entry was invalidated")
}

func (s *MembershipServiceSuite) TestCancelRejectsAlreadyCanceled() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.Cancel(s.GetContext(), "user-1")
	s.NoError(err)

	_, err = s.service.Cancel(s.GetContext(), "user-1")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MembershipServiceSuite) TestRenewAppliesPendingPlanAndResetsCredits() {
	s.seedCatalog()
	created := s.subscribe("plan-basic")

	_, err := s.service.ChangePlan(s.GetContext(), "user-1", &dto.ChangePlanRequest{PlanID: "plan-premium"})
	s.NoError(err)

	// Leftover membership credits from the old period plus some boost credits
	_, err = s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassBoost, 3, types.CreditReasonBoostPurchase, "")
	s.NoError(err)

	resp, err := s.service.Renew(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal("plan-premium", resp.PlanID)
	s.Nil(resp.PendingUpgradePlanID)
	s.Equal(int64(1), resp.GrandPrizeEntries)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(12), bal.MembershipCredits, "old allotment zeroed, new plan's granted")
	s.Equal(int64(3), bal.BoostCredits, "boost pool untouched by renewal")
}

func (s *MembershipServiceSuite) TestRenewAdvancesPeriodFromPreviousEnd() {
	s.seedCatalog()
	created := s.subscribe("plan-basic")
	previousEnd := *created.CurrentPeriodEnd

	resp, err := s.service.Renew(s.GetContext(), created.ID)
	s.NoError(err)
	s.Require().NotNil(resp.CurrentPeriodStart)
	s.True(resp.CurrentPeriodStart.Equal(previousEnd), "new period continues from the previous end")
}

func (s *MembershipServiceSuite) TestRenewRejectsNonActiveMembership() {
	s.seedCatalog()
	created := s.subscribe("plan-basic")

	_, err := s.service.Cancel(s.GetContext(), "user-1")
	s.NoError(err)

	_, err = s.service.Renew(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MembershipServiceSuite) TestPaymentFailureMovesToPastDue() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	resp, err := s.service.HandlePaymentFailure(s.GetContext(), "user-1", false)
	s.NoError(err)
	s.Equal(types.MembershipStatusPastDue, resp.MembershipStatus)
	s.False(resp.IsActive)
}

func (s *MembershipServiceSuite) TestFinalPaymentFailureMovesToPaymentFailed() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	resp, err := s.service.HandlePaymentFailure(s.GetContext(), "user-1", true)
	s.NoError(err)
	s.Equal(types.MembershipStatusPaymentFailed, resp.MembershipStatus)
}

func (s *MembershipServiceSuite) TestPaymentRecoveryCompletesWithheldRenewal() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.HandlePaymentFailure(s.GetContext(), "user-1", false)
	s.NoError(err)

	resp, err := s.service.HandlePaymentRecovery(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(types.MembershipStatusActive, resp.MembershipStatus)
	s.Equal(int64(1), resp.GrandPrizeEntries)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(5), bal.MembershipCredits, "recovery grants the withheld period credits")
}

func (s *MembershipServiceSuite) TestPaymentRecoveryRejectsHealthyMembership() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.HandlePaymentRecovery(s.GetContext(), "user-1")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MembershipServiceSuite) TestPauseRejectsPastDueMembership() {
	s.seedCatalog()
	s.subscribe("plan-basic")

	_, err := s.service.HandlePaymentFailure(s.GetContext(), "user-1", false)
	s.NoError(err)

	_, err = s.service.Pause(s.GetContext(), "user-1")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MembershipServiceSuite) TestLockIsReleasedAfterTransition() {
	s.seedCatalog()
	resp := s.subscribe("plan-basic")

	_, err := s.service.Pause(s.GetContext(), "user-1")
	s.NoError(err)
	_, err = s.service.Resume(s.GetContext(), "user-1")
	s.NoError(err)

	m, err := s.GetStores().MembershipRepo.Get(s.GetContext(), resp.ID)
	s.NoError(err)
	s.False(m.IsProcessingChange)
}
