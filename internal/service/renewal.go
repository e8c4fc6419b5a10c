package service

import (
	"context"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/membership"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/renewal"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/idempotency"
	"github.com/Unicash-organization/unicash-entitlement/internal/payment"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/cenkalti/backoff/v4"
)

// RenewalSweepResult summarizes one pass of the renewal sweep
type RenewalSweepResult struct {
	Due     int
	Renewed int
	Failed  int
}

// RenewalService drives the periodic sweeps: charging due renewals and
// auto-resuming expired pauses. Each membership is handled independently so
// one failure never stalls the sweep.
type RenewalService interface {
	ProcessDueRenewals(ctx context.Context) (*RenewalSweepResult, error)
	ExpirePauses(ctx context.Context) (int, error)
}

type renewalService struct {
	ServiceParams
	memberships MembershipService
}

// NewRenewalService creates a new renewal service
func NewRenewalService(params ServiceParams) RenewalService {
	return &renewalService{
		ServiceParams: params,
		memberships:   NewMembershipService(params),
	}
}

// ProcessDueRenewals charges every active membership whose period has lapsed
// and applies the renewal on success. Transport errors are retried with
// exponential backoff; card declines are not retried here and move the
// membership to past due.
func (s *renewalService) ProcessDueRenewals(ctx context.Context) (*RenewalSweepResult, error) {
	now := time.Now().UTC()
	due, err := s.MembershipRepo.ListDueForRenewal(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &RenewalSweepResult{Due: len(due)}
	for _, m := range due {
		if err := s.renewOne(ctx, m); err != nil {
			result.Failed++
			s.Logger.Errorw("renewal failed",
				"membership_id", m.ID,
				"user_id", m.UserID,
				"error", err,
			)
			continue
		}
		result.Renewed++
	}

	s.Logger.Infow("renewal sweep complete",
		"due", result.Due,
		"renewed", result.Renewed,
		"failed", result.Failed,
	)

	return result, nil
}

func (s *renewalService) renewOne(ctx context.Context, m *membership.Membership) error {
	u, err := s.UserRepo.Get(ctx, m.UserID)
	if err != nil {
		return err
	}

	// Charge the plan that will be in effect after the renewal
	planID := m.PlanID
	if pendingID := m.PendingPlanID(); pendingID != nil {
		planID = *pendingID
	}
	p, err := s.PlanRepo.Get(ctx, planID)
	if err != nil {
		return err
	}

	periodStart := time.Now().UTC()
	if m.CurrentPeriodEnd != nil {
		periodStart = *m.CurrentPeriodEnd
	}
	periodEnd := periodStart.Add(time.Duration(s.Config.Billing.PeriodDays) * 24 * time.Hour)

	idemKey := s.IdempotencyGenerator.GenerateKey(idempotency.ScopeRenewalCharge, map[string]interface{}{
		"membership_id": m.ID,
		"period_start":  periodStart.Format("2006-01-02"),
	})

	record := &renewal.Record{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RENEWAL_RECORD),
		MembershipID:   m.ID,
		UserID:         m.UserID,
		PlanID:         p.ID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		RenewalStatus:  types.RenewalStatusPending,
		Amount:         p.PriceMonthly,
		IdempotencyKey: idemKey,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.RenewalRepo.Create(ctx, record); err != nil {
		return err
	}

	charge, err := s.chargeWithRetry(ctx, &payment.ChargeRequest{
		UserID:              m.UserID,
		ProviderCustomerRef: u.ProviderCustomerRef,
		Amount:              p.PriceMonthly,
		Currency:            s.Config.Billing.Currency,
		Description:         "membership renewal",
		IdempotencyKey:      idemKey,
	})
	if err != nil {
		record.RenewalStatus = types.RenewalStatusFailed
		record.FailureReason = err.Error()
		if updErr := s.RenewalRepo.Update(ctx, record); updErr != nil {
			s.Logger.Errorw("failed to record renewal failure", "record_id", record.ID, "error", updErr)
		}
		if _, pfErr := s.memberships.HandlePaymentFailure(ctx, m.UserID, false); pfErr != nil {
			return pfErr
		}
		return err
	}

	if !charge.Succeeded {
		record.RenewalStatus = types.RenewalStatusFailed
		record.FailureReason = string(charge.DeclineCode)
		if updErr := s.RenewalRepo.Update(ctx, record); updErr != nil {
			s.Logger.Errorw("failed to record renewal decline", "record_id", record.ID, "error", updErr)
		}
		if _, pfErr := s.memberships.HandlePaymentFailure(ctx, m.UserID, false); pfErr != nil {
			return pfErr
		}
		return ierr.NewError("renewal charge declined").
			WithHintf("Your renewal payment was declined (%s)", charge.DeclineCode).
			WithReportableDetails(map[string]any{
				"membership_id": m.ID,
				"decline_code":  charge.DeclineCode,
			}).
			Mark(ierr.ErrPaymentDeclined)
	}

	if _, err := s.memberships.Renew(ctx, m.ID); err != nil {
		return err
	}

	record.RenewalStatus = types.RenewalStatusSucceeded
	record.CreditsGranted = p.FreeCreditsPerPeriod
	record.GrandPrizeEntriesGranted = p.GrandPrizeEntriesPerPeriod
	return s.RenewalRepo.Update(ctx, record)
}

// chargeWithRetry retries transport-level charge errors; a response with a
// decline code is a definitive answer and is returned as-is.
func (s *renewalService) chargeWithRetry(ctx context.Context, req *payment.ChargeRequest) (*payment.ChargeResult, error) {
	var result *payment.ChargeResult

	operation := func() error {
		res, err := s.PaymentGateway.ChargeSavedPaymentMethod(ctx, req)
		if err != nil {
			return err
		}
		result = res
		return nil
	}

	b := backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(),
		uint64(s.Config.Billing.RenewalMaxRetries),
	)
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return result, nil
}

// ExpirePauses auto-resumes memberships whose pause window has lapsed, with
// the same effect as a manual resume.
func (s *renewalService) ExpirePauses(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	expired, err := s.MembershipRepo.ListExpiredPauses(ctx, now)
	if err != nil {
		return 0, err
	}

	resumed := 0
	for _, m := range expired {
		if _, err := s.memberships.Resume(ctx, m.UserID); err != nil {
			s.Logger.Errorw("failed to auto-resume expired pause",
				"membership_id", m.ID,
				"user_id", m.UserID,
				"error", err,
			)
			continue
		}
		resumed++
	}

	if resumed > 0 {
		s.Logger.Infow("expired pauses resumed", "count", resumed)
	}

	return resumed, nil
}
