package service

import (
	"context"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/credit"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// SpendResult reports how a spend was split across the two credit pools.
// Membership credits are consumed before boost credits since boost credits
// never expire and are strictly more valuable to the holder.
type SpendResult struct {
	MembershipDebited int64
	BoostDebited      int64
	Source            types.CreditClass
}

// CreditLedgerService owns the append-only credit ledger and the
// denormalized per-user balances projected from it.
type CreditLedgerService interface {
	Grant(ctx context.Context, userID string, class types.CreditClass, amount int64, reason types.CreditReason, periodKey string) (*credit.LedgerEntry, error)
	Spend(ctx context.Context, userID string, amount int64, reason types.CreditReason, idempotencyKey string) (*SpendResult, error)
	Refund(ctx context.Context, userID string, membershipAmount, boostAmount int64, reason types.CreditReason) error
	ResetMembershipCredits(ctx context.Context, userID string, reason types.CreditReason) error
	Balance(ctx context.Context, userID string) (*dto.CreditBalanceResponse, error)
	ListLedger(ctx context.Context, userID string) ([]*dto.CreditLedgerEntryResponse, error)
}

type creditLedgerService struct {
	ServiceParams
}

// NewCreditLedgerService creates a new credit ledger service
func NewCreditLedgerService(params ServiceParams) CreditLedgerService {
	return &creditLedgerService{
		ServiceParams: params,
	}
}

// Grant appends a positive ledger entry and updates the cached balance
func (s *creditLedgerService) Grant(ctx context.Context, userID string, class types.CreditClass, amount int64, reason types.CreditReason, periodKey string) (*credit.LedgerEntry, error) {
	if amount <= 0 {
		return nil, ierr.NewError("grant amount must be positive").
			WithHint("Credit grants must be for a positive amount").
			WithReportableDetails(map[string]any{
				"user_id": userID,
				"amount":  amount,
			}).
			Mark(ierr.ErrValidation)
	}
	if err := class.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	newMembership := u.MembershipCredits
	newBoost := u.BoostCredits
	var balanceAfter int64
	switch class {
	case types.CreditClassMembership:
		newMembership += amount
		balanceAfter = newMembership
	case types.CreditClassBoost:
		newBoost += amount
		balanceAfter = newBoost
	}

	entry := &credit.LedgerEntry{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_ENTRY),
		UserID:       userID,
		Class:        class,
		Amount:       amount,
		Reason:       reason,
		BalanceAfter: balanceAfter,
		PeriodKey:    periodKey,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.CreditRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.UserRepo.UpdateBalances(ctx, userID, newMembership, newBoost); err != nil {
		return nil, err
	}

	s.Logger.Infow("granted credits",
		"user_id", userID,
		"class", class,
		"amount", amount,
		"reason", reason,
		"balance_after", balanceAfter,
	)

	return entry, nil
}

// Spend atomically debits up to two pools, membership first. The request
// fails with ErrInsufficientCredits when the combined total is short; no
// partial debit is ever applied.
func (s *creditLedgerService) Spend(ctx context.Context, userID string, amount int64, reason types.CreditReason, idempotencyKey string) (*SpendResult, error) {
	if amount <= 0 {
		return nil, ierr.NewError("spend amount must be positive").
			WithHint("Credit spends must be for a positive amount").
			Mark(ierr.ErrValidation)
	}

	if idempotencyKey != "" {
		if existing, err := s.CreditRepo.GetEntryByIdempotencyKey(ctx, idempotencyKey); err == nil && existing != nil {
			return nil, ierr.NewError("spend already processed").
				WithHint("This spend was already applied").
				WithReportableDetails(map[string]any{
					"idempotency_key": idempotencyKey,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.TotalCredits() < amount {
		return nil, ierr.NewError("insufficient credits").
			WithHintf("You need %d credits but only have %d", amount, u.TotalCredits()).
			WithReportableDetails(map[string]any{
				"user_id":  userID,
				"required": amount,
				"balance":  u.TotalCredits(),
			}).
			Mark(ierr.ErrInsufficientCredits)
	}

	membershipDebit := min64(u.MembershipCredits, amount)
	boostDebit := amount - membershipDebit

	newMembership := u.MembershipCredits - membershipDebit
	newBoost := u.BoostCredits - boostDebit

	if membershipDebit > 0 {
		entry := &credit.LedgerEntry{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_ENTRY),
			UserID:         userID,
			Class:          types.CreditClassMembership,
			Amount:         -membershipDebit,
			Reason:         reason,
			BalanceAfter:   newMembership,
			IdempotencyKey: idempotencyKey,
			BaseModel:      types.GetDefaultBaseModel(ctx),
		}
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		if err := s.CreditRepo.CreateEntry(ctx, entry); err != nil {
			return nil, err
		}
	}
	if boostDebit > 0 {
		entry := &credit.LedgerEntry{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_ENTRY),
			UserID:       userID,
			Class:        types.CreditClassBoost,
			Amount:       -boostDebit,
			Reason:       reason,
			BalanceAfter: newBoost,
			BaseModel:    types.GetDefaultBaseModel(ctx),
		}
		// The idempotency key lives on the membership-side entry when the
		// spend spans both pools
		if membershipDebit == 0 {
			entry.IdempotencyKey = idempotencyKey
		}
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		if err := s.CreditRepo.CreateEntry(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err := s.UserRepo.UpdateBalances(ctx, userID, newMembership, newBoost); err != nil {
		return nil, err
	}

	source := types.CreditClassBoost
	if membershipDebit > 0 {
		source = types.CreditClassMembership
	}

	s.Logger.Infow("spent credits",
		"user_id", userID,
		"amount", amount,
		"membership_debited", membershipDebit,
		"boost_debited", boostDebit,
		"reason", reason,
	)

	return &SpendResult{
		MembershipDebited: membershipDebit,
		BoostDebited:      boostDebit,
		Source:            source,
	}, nil
}

// Refund returns previously debited credits to their original pools. Used to
// roll back a debit when a later step of an atomic unit fails.
func (s *creditLedgerService) Refund(ctx context.Context, userID string, membershipAmount, boostAmount int64, reason types.CreditReason) error {
	if membershipAmount < 0 || boostAmount < 0 {
		return ierr.NewError("refund amounts cannot be negative").
			WithHint("Invalid refund amounts").
			Mark(ierr.ErrValidation)
	}

	if membershipAmount > 0 {
		if _, err := s.Grant(ctx, userID, types.CreditClassMembership, membershipAmount, reason, ""); err != nil {
			return err
		}
	}
	if boostAmount > 0 {
		if _, err := s.Grant(ctx, userID, types.CreditClassBoost, boostAmount, reason, ""); err != nil {
			return err
		}
	}
	return nil
}

// ResetMembershipCredits zeroes only the membership-class balance. Called on
// pause, cancel, renewal, and plan change.
func (s *creditLedgerService) ResetMembershipCredits(ctx context.Context, userID string, reason types.CreditReason) error {
	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return err
	}

	if u.MembershipCredits == 0 {
		return nil
	}

	entry := &credit.LedgerEntry{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_ENTRY),
		UserID:       userID,
		Class:        types.CreditClassMembership,
		Amount:       -u.MembershipCredits,
		Reason:       reason,
		BalanceAfter: 0,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
	if err := s.CreditRepo.CreateEntry(ctx, entry); err != nil {
		return err
	}
	if err := s.UserRepo.UpdateBalances(ctx, userID, 0, u.BoostCredits); err != nil {
		return err
	}

	s.Logger.Infow("reset membership credits",
		"user_id", userID,
		"zeroed", u.MembershipCredits,
		"reason", reason,
	)

	return nil
}

// Balance returns both pool balances from the cached projection
func (s *creditLedgerService) Balance(ctx context.Context, userID string) (*dto.CreditBalanceResponse, error) {
	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.CreditBalanceResponse{
		UserID:            u.ID,
		MembershipCredits: u.MembershipCredits,
		BoostCredits:      u.BoostCredits,
		TotalCredits:      u.TotalCredits(),
	}, nil
}

// ListLedger returns the user's ledger history, newest first
func (s *creditLedgerService) ListLedger(ctx context.Context, userID string) ([]*dto.CreditLedgerEntryResponse, error) {
	entries, err := s.CreditRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CreditLedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.NewCreditLedgerEntryResponse(e))
	}
	return out, nil
}

// PeriodKey tags membership-class grants with the billing period they belong to
func PeriodKey(periodStart time.Time) string {
	return periodStart.UTC().Format("2006-01-02")
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
