package service

import (
	"testing"

	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/testutil"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/stretchr/testify/suite"
)

type CreditLedgerServiceSuite struct {
	testutil.BaseServiceSuite
	ledger CreditLedgerService
}

func TestCreditLedgerService(t *testing.T) {
	suite.Run(t, new(CreditLedgerServiceSuite))
}

func (s *CreditLedgerServiceSuite) SetupTest() {
	s.BaseServiceSuite.SetupTest()
	s.ledger = NewCreditLedgerService(testServiceParams(&s.BaseServiceSuite))
}

func (s *CreditLedgerServiceSuite) seedUser(id string) {
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), newTestUser(id)))
}

func (s *CreditLedgerServiceSuite) TestGrantUpdatesBalance() {
	s.seedUser("user-1")

	entry, err := s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassMembership, 10, types.CreditReasonPeriodGrant, "2026-01-01")
	s.NoError(err)
	s.Equal(int64(10), entry.Amount)
	s.Equal(int64(10), entry.BalanceAfter)
	s.Equal("2026-01-01", entry.PeriodKey)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(10), bal.MembershipCredits)
	s.Equal(int64(0), bal.BoostCredits)
	s.Equal(int64(10), bal.TotalCredits)
}

func (s *CreditLedgerServiceSuite) TestGrantRejectsNonPositiveAmount() {
	s.seedUser("user-1")

	_, err := s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassMembership, 0, types.CreditReasonPeriodGrant, "")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CreditLedgerServiceSuite) TestSpendDebitsMembershipPoolFirst() {
	s.seedUser("user-1")
	_, err := s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassMembership, 3, types.CreditReasonPeriodGrant, "")
	s.NoError(err)
	_, err = s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassBoost, 5, types.CreditReasonBoostPurchase, "")
	s.NoError(err)

	res, err := s.ledger.Spend(s.GetContext(), "user-1", 4, types.CreditReasonDrawEntry, "")
	s.NoError(err)
	s.Equal(int64(3), res.MembershipDebited)
	s.Equal(int64(1), res.BoostDebited)
	s.Equal(types.CreditClassMembership, res.Source)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(0), bal.MembershipCredits)
	s.Equal(int64(4), bal.BoostCredits)
}

func (s *CreditLedgerServiceSuite) TestSpendFromBoostOnlyPool() {
	s.seedUser("user-1")
	_, err := s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassBoost, 5, types.CreditReasonBoostPurchase, "")
	s.NoError(err)

	res, err := s.ledger.Spend(s.GetContext(), "user-1", 2, types.CreditReasonDrawEntry, "")
	s.NoError(err)
	s.Equal(int64(0), res.MembershipDebited)
	s.Equal(int64(2), res.BoostDebited)
	s.Equal(types.CreditClassBoost, res.Source)
}

func (s *CreditLedgerServiceSuite) TestSpendFailsWithoutPartialDebit() {
	s.seedUser("user-1")
	_, err := s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassMembership, 2, types.CreditReasonPeriodGrant, "")
	s.NoError(err)

	_, err = s.ledger.Spend(s.GetContext(), "user-1", 5, types.CreditReasonDrawEntry, "")
	s.Error(err)
	s.True(ierr.IsInsufficientCredits(err))

	// Balance untouched
	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(2), bal.MembershipCredits)
}

func (s *CreditLedgerServiceSuite) TestSpendIsIdempotentPerKey() {
	s.seedUser("user-1")
	_, err := s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassMembership, 10, types.CreditReasonPeriodGrant, "")
	s.NoError(err)

	_, err = s.ledger.Spend(s.GetContext(), "user-1", 3, types.CreditReasonDrawEntry, "key-1")
	s.NoError(err)

	_, err = s.ledger.Spend(s.GetContext(), "user-1", 3, types.CreditReasonDrawEntry, "key-1")
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(7), bal.MembershipCredits)
}

func (s *CreditLedgerServiceSuite) TestRefundReturnsCreditsToOriginalPools() {
	s.seedUser("user-1")
	_, err := s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassMembership, 3, types.CreditReasonPeriodGrant, "")
	s.NoError(err)
	_, err = s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassBoost, 3, types.CreditReasonBoostPurchase, "")
	s.NoError(err)

	_, err = s.ledger.Spend(s.GetContext(), "user-1", 5, types.CreditReasonDrawEntry, "")
	s.NoError(err)

	err = s.ledger.Refund(s.GetContext(), "user-1", 3, 2, types.CreditReasonDrawEntryRollback)
	s.NoError(err)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(3), bal.MembershipCredits)
	s.Equal(int64(3), bal.BoostCredits)
}

func (s *CreditLedgerServiceSuite) TestResetZeroesOnlyMembershipPool() {
	s.seedUser("user-1")
	_, err := s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassMembership, 10, types.CreditReasonPeriodGrant, "")
	s.NoError(err)
	_, err = s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassBoost, 7, types.CreditReasonBoostPurchase, "")
	s.NoError(err)

	err = s.ledger.ResetMembershipCredits(s.GetContext(), "user-1", types.CreditReasonPauseReset)
	s.NoError(err)

	bal, err := s.ledger.Balance(s.GetContext(), "user-1")
	s.NoError(err)
	s.Equal(int64(0), bal.MembershipCredits)
	s.Equal(int64(7), bal.BoostCredits)
}

func (s *CreditLedgerServiceSuite) TestResetOnZeroBalanceAppendsNothing() {
	s.seedUser("user-1")

	err := s.ledger.ResetMembershipCredits(s.GetContext(), "user-1", types.CreditReasonPeriodReset)
	s.NoError(err)

	entries, err := s.ledger.ListLedger(s.GetContext(), "user-1")
	s.NoError(err)
	s.Empty(entries)
}

func (s *CreditLedgerServiceSuite) TestListLedgerRecordsHistory() {
	s.seedUser("user-1")
	_, err := s.ledger.Grant(s.GetContext(), "user-1", types.CreditClassMembership, 10, types.CreditReasonPeriodGrant, "")
	s.NoError(err)
	_, err = s.ledger.Spend(s.GetContext(), "user-1", 4, types.CreditReasonDrawEntry, "")
	s.NoError(err)

	entries, err := s.ledger.ListLedger(s.GetContext(), "user-1")
	s.NoError(err)
	s.Len(entries, 2)
}
