package service

import (
	"context"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/draw"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/idempotency"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// DrawEntryService guards draw entry: membership gating, credit debit, the
// one-active-entry-per-draw rule, and the entrant cap, all behind an
// idempotent TryEnter.
type DrawEntryService interface {
	TryEnter(ctx context.Context, userID, drawID, idempotencyKey string) (*dto.DrawEntryResponse, error)
	GetDraw(ctx context.Context, drawID string) (*dto.DrawResponse, error)
	ListDraws(ctx context.Context) ([]*dto.DrawResponse, error)
	ListEntries(ctx context.Context, userID string) ([]*dto.DrawEntryResponse, error)
}

type drawEntryService struct {
	ServiceParams
	ledger CreditLedgerService
}

// NewDrawEntryService creates a new draw entry service
func NewDrawEntryService(params ServiceParams) DrawEntryService {
	return &drawEntryService{
		ServiceParams: params,
		ledger:        NewCreditLedgerService(params),
	}
}

// TryEnter attempts to enter the user into the draw. Debit, entry creation,
// and the cap increment form one atomic unit: if a later step fails, the
// earlier steps are rolled back so the caller never loses credits without an
// entry. Replays with the same idempotency key return the original entry.
func (s *drawEntryService) TryEnter(ctx context.Context, userID, drawID, idempotencyKey string) (*dto.DrawEntryResponse, error) {
	if idempotencyKey == "" {
		idempotencyKey = s.IdempotencyGenerator.GenerateKey(idempotency.ScopeDrawEntry, map[string]interface{}{
			"user_id": userID,
			"draw_id": drawID,
		})
	}

	// Replay detection before any state changes
	if existing, err := s.DrawRepo.GetEntryByIdempotencyKey(ctx, idempotencyKey); err == nil && existing != nil {
		s.Logger.Infow("replayed draw entry",
			"user_id", userID,
			"draw_id", drawID,
			"entry_id", existing.ID,
		)
		return dto.NewDrawEntryResponse(existing), nil
	}

	d, err := s.DrawRepo.GetDraw(ctx, drawID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if d.IsClosed(now) {
		return nil, ierr.NewError("draw is closed").
			WithHint("This draw is no longer accepting entries").
			WithReportableDetails(map[string]any{
				"draw_id":   drawID,
				"closes_at": d.ClosesAt,
			}).
			Mark(ierr.ErrDrawClosed)
	}
	if d.IsSoldOut() {
		return nil, ierr.NewError("draw is sold out").
			WithHint("This draw has reached its entry cap").
			Mark(ierr.ErrDrawSoldOut)
	}

	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsLocked {
		return nil, ierr.NewError("account is locked").
			WithHint("Your account is locked; contact support").
			Mark(ierr.ErrPermissionDenied)
	}

	if d.RequiresMembership {
		m, err := s.MembershipRepo.GetByUserID(ctx, userID)
		if err != nil && !ierr.IsNotFound(err) {
			return nil, err
		}
		if m == nil || !m.IsActive(now) {
			return nil, ierr.NewError("active membership required").
				WithHint("An active membership is required to enter this draw").
				WithReportableDetails(map[string]any{
					"draw_id": drawID,
				}).
				Mark(ierr.ErrMembershipRequired)
		}
	}

	if active, err := s.DrawRepo.FindActiveEntry(ctx, userID, drawID); err == nil && active != nil {
		return nil, ierr.NewError("already entered").
			WithHint("You have already entered this draw").
			WithReportableDetails(map[string]any{
				"draw_id":  drawID,
				"entry_id": active.ID,
			}).
			Mark(ierr.ErrConflict)
	}

	// Debit first; everything after rolls the debit back on failure
	var spent *SpendResult
	source := types.CreditClassMembership
	if d.CostPerEntry > 0 {
		spent, err = s.ledger.Spend(ctx, userID, d.CostPerEntry, types.CreditReasonDrawEntry, idempotencyKey)
		if err != nil {
			return nil, err
		}
		source = spent.Source
	}

	entry := &draw.Entry{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DRAW_ENTRY),
		UserID:         userID,
		DrawID:         drawID,
		CreditsSpent:   d.CostPerEntry,
		Source:         source,
		OrderNo:        types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_ORDER),
		IdempotencyKey: idempotencyKey,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	if err := s.DrawRepo.CreateEntry(ctx, entry); err != nil {
		s.rollbackSpend(ctx, userID, spent)
		if ierr.IsConflict(err) {
			return nil, ierr.WithError(err).
				WithHint("You have already entered this draw").
				Mark(ierr.ErrConflict)
		}
		return nil, err
	}

	if err := s.DrawRepo.IncrementEntrants(ctx, drawID); err != nil {
		// Lost the race for the last slot: void the entry and return the credits
		entry.IsRefunded = true
		entry.RefundReason = types.DrawEntryRefundReasonCapExceeded
		if updErr := s.DrawRepo.UpdateEntry(ctx, entry); updErr != nil {
			s.Logger.Errorw("failed to void entry after cap race",
				"entry_id", entry.ID,
				"error", updErr,
			)
		}
		s.rollbackSpend(ctx, userID, spent)
		return nil, err
	}

	s.Logger.Infow("accepted draw entry",
		"user_id", userID,
		"draw_id", drawID,
		"entry_id", entry.ID,
		"order_no", entry.OrderNo,
		"credits_spent", entry.CreditsSpent,
	)

	return dto.NewDrawEntryResponse(entry), nil
}

// rollbackSpend returns debited credits to their original pools
func (s *drawEntryService) rollbackSpend(ctx context.Context, userID string, spent *SpendResult) {
	if spent == nil {
		return
	}
	if err := s.ledger.Refund(ctx, userID, spent.MembershipDebited, spent.BoostDebited, types.CreditReasonDrawEntryRollback); err != nil {
		s.Logger.Errorw("failed to roll back draw entry debit",
			"user_id", userID,
			"membership_amount", spent.MembershipDebited,
			"boost_amount", spent.BoostDebited,
			"error", err,
		)
	}
}

// GetDraw returns the public view of a draw
func (s *drawEntryService) GetDraw(ctx context.Context, drawID string) (*dto.DrawResponse, error) {
	d, err := s.DrawRepo.GetDraw(ctx, drawID)
	if err != nil {
		return nil, err
	}
	return dto.NewDrawResponse(d), nil
}

// ListDraws returns all published draws
func (s *drawEntryService) ListDraws(ctx context.Context) ([]*dto.DrawResponse, error) {
	draws, err := s.DrawRepo.ListDraws(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DrawResponse, 0, len(draws))
	for _, d := range draws {
		out = append(out, dto.NewDrawResponse(d))
	}
	return out, nil
}

// ListEntries returns the user's draw entries, refunded ones included
func (s *drawEntryService) ListEntries(ctx context.Context, userID string) ([]*dto.DrawEntryResponse, error) {
	entries, err := s.DrawRepo.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DrawEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.NewDrawEntryResponse(e))
	}
	return out, nil
}
