package service

import (
	"testing"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/testutil"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/stretchr/testify/suite"
)

type DrawEntryServiceSuite struct {
	testutil.BaseServiceSuite
	service     DrawEntryService
	ledger      CreditLedgerService
	memberships MembershipService
}

func TestDrawEntryService(t *testing.T) {
	suite.Run(t, new(DrawEntryServiceSuite))
}

func (s *DrawEntryServiceSuite) SetupTest() {
	s.BaseServiceSuite.SetupTest()
	params := testServiceParams(&s.BaseServiceSuite)
	s.service = NewDrawEntryService(params)
	s.ledger = NewCreditLedgerService(params)
	s.memberships = NewMembershipService(params)
}

func (s *DrawEntryServiceSuite) seedUserWithCredits(id string, membershipCredits, boostCredits int64) {
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), newTestUser(id)))
	if membershipCredits > 0 {
		_, err := s.ledger.Grant(s.GetContext(), id, types.CreditClassMembership, membershipCredits, types.CreditReasonPeriodGrant, "")
		s.Require().NoError(err)
	}
	if boostCredits > 0 {
		_, err := s.ledger.Grant(s.GetContext(), id, types.CreditClassBoost, boostCredits, types.CreditReasonBoostPurchase, "")
		s.Require().NoError(err)
	}
}

func (s *DrawEntryServiceSuite) TestTryEnterDebitsAndRecordsEntry() {
	s.seedUserWithCredits("user-1", 5, 0)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, false)))

	resp, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "key-1")
	s.NoError(err)
	s.Equal("user-1", resp.UserID)
	s.Equal("draw-1", resp.DrawID)
	s.Equal(int64(2), resp.CreditsSpent)
	s.Equal(types.CreditClassMembership, resp.Source)
	s.NotEmpty(resp.OrderNo)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(3), bal.MembershipCredits)

	d, err := s.service.GetDraw(s.GetContext(), "draw-1")
	s.NoError(err)
	s.Equal(1, d.EntrantCount)
}

func (s *DrawEntryServiceSuite) TestTryEnterReplaysWithSameKey() {
	s.seedUserWithCredits("user-1", 5, 0)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, false)))

	first, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "key-1")
	s.NoError(err)

	second, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "key-1")
	s.NoError(err)
	s.Equal(first.ID, second.ID, "replay returns the original entry")

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(3), bal.MembershipCredits, "credits debited exactly once")
}

func (s *DrawEntryServiceSuite) TestTryEnterGeneratesKeyWhenAbsent() {
	s.seedUserWithCredits("user-1", 5, 0)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, false)))

	first, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.NoError(err)

	// A second keyless submit derives the same key and replays
	second, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.NoError(err)
	s.Equal(first.ID, second.ID)
}

func (s *DrawEntryServiceSuite) TestTryEnterSpendsBoostWhenMembershipPoolEmpty() {
	s.seedUserWithCredits("user-1", 0, 5)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, false)))

	resp, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.NoError(err)
	s.Equal(types.CreditClassBoost, resp.Source)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(3), bal.BoostCredits)
}

func (s *DrawEntryServiceSuite) TestTryEnterRejectsInsufficientCredits() {
	s.seedUserWithCredits("user-1", 1, 0)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, false)))

	_, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.Error(err)
	s.True(ierr.IsInsufficientCredits(err))
}

func (s *DrawEntryServiceSuite) TestTryEnterRejectsClosedDraw() {
	s.seedUserWithCredits("user-1", 5, 0)
	d := newTestDraw("draw-1", 2, 100, false)
	d.ClosesAt = time.Now().UTC().Add(-time.Hour)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), d))

	_, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.Error(err)
	s.ErrorIs(err, ierr.ErrDrawClosed)
}

func (s *DrawEntryServiceSuite) TestTryEnterRejectsSoldOutDraw() {
	s.seedUserWithCredits("user-1", 5, 0)
	d := newTestDraw("draw-1", 2, 1, false)
	d.EntrantCount = 1
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), d))

	_, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.Error(err)
	s.ErrorIs(err, ierr.ErrDrawSoldOut)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(5), bal.MembershipCredits, "no debit on rejection")
}

func (s *DrawEntryServiceSuite) TestTryEnterRequiresMembershipWhenGated() {
	s.seedUserWithCredits("user-1", 5, 0)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, true)))

	_, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.Error(err)
	s.True(ierr.IsMembershipRequired(err))
}

func (s *DrawEntryServiceSuite) TestTryEnterAllowsActiveMemberIntoGatedDraw() {
	s.seedUserWithCredits("user-1", 0, 0)
	s.NoError(s.GetStores().PlanRepo.Create(s.GetContext(), newTestPlan("plan-basic", types.PlanTierUniOne, 10, 5)))
	_, err := s.memberships.Subscribe(s.GetContext(), &dto.SubscribeRequest{UserID: "user-1", PlanID: "plan-basic"})
	s.Require().NoError(err)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, true)))

	resp, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.NoError(err)
	s.Equal(int64(2), resp.CreditsSpent)
}

func (s *DrawEntryServiceSuite) TestTryEnterRejectsPausedMemberFromGatedDraw() {
	s.seedUserWithCredits("user-1", 0, 10)
	s.NoError(s.GetStores().PlanRepo.Create(s.GetContext(), newTestPlan("plan-basic", types.PlanTierUniOne, 10, 5)))
	_, err := s.memberships.Subscribe(s.GetContext(), &dto.SubscribeRequest{UserID: "user-1", PlanID: "plan-basic"})
	s.Require().NoError(err)
	_, err = s.memberships.Pause(s.GetContext(), "user-1")
	s.Require().NoError(err)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, true)))

	_, err = s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.Error(err)
	s.True(ierr.IsMembershipRequired(err))
}

func (s *DrawEntryServiceSuite) TestTryEnterRejectsSecondActiveEntry() {
	s.seedUserWithCredits("user-1", 10, 0)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, false)))

	_, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "key-1")
	s.NoError(err)

	_, err = s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "key-2")
	s.Error(err)
	s.True(ierr.IsConflict(err))

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(8), bal.MembershipCredits, "only the first entry debited")
}

func (s *DrawEntryServiceSuite) TestTryEnterRejectsLockedUser() {
	locked := newTestUser("user-locked")
	locked.IsLocked = true
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), locked))
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, false)))

	_, err := s.service.TryEnter(s.GetContext(), "user-locked", "draw-1", "")
	s.Error(err)
	s.ErrorIs(err, ierr.ErrPermissionDenied)
}

func (s *DrawEntryServiceSuite) TestFreeDrawSkipsDebit() {
	s.seedUserWithCredits("user-1", 0, 0)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 0, 100, false)))

	resp, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.NoError(err)
	s.Equal(int64(0), resp.CreditsSpent)
}

func (s *DrawEntryServiceSuite) TestListEntriesIncludesRefunded() {
	s.seedUserWithCredits("user-1", 10, 0)
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, false)))

	_, err := s.service.TryEnter(s.GetContext(), "user-1", "draw-1", "")
	s.NoError(err)
	_, err = s.GetStores().DrawRepo.InvalidateEntriesByUser(s.GetContext(), "user-1", types.DrawEntryRefundReasonMembershipCanceled)
	s.NoError(err)

	entries, err := s.service.ListEntries(s.GetContext(), "user-1")
	s.NoError(err)
	s.Len(entries, 1)
}

func (s *DrawEntryServiceSuite) TestListDraws() {
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-1", 2, 100, false)))
	s.NoError(s.GetStores().DrawRepo.CreateDraw(s.GetContext(), newTestDraw("draw-2", 1, types.DrawCapUnlimited, true)))

	draws, err := s.service.ListDraws(s.GetContext())
	s.NoError(err)
	s.Len(draws, 2)
}
