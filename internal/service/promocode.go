package service

import (
	"context"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/shopspring/decimal"
)

// PromoCodeService validates a code against a live order amount. Validation
// is stateless: it must be re-run every time the order amount changes, and it
// fails closed so the caller clears the code on any error.
type PromoCodeService interface {
	Validate(ctx context.Context, req *dto.ValidatePromoCodeRequest) (*dto.PromoCodeValidationResponse, error)
	RecordRedemption(ctx context.Context, code string) error
}

type promoCodeService struct {
	ServiceParams
}

// NewPromoCodeService creates a new promo code service
func NewPromoCodeService(params ServiceParams) PromoCodeService {
	return &promoCodeService{
		ServiceParams: params,
	}
}

// Validate checks the code against the submitted order amount and returns
// the discount. Every failure is marked ErrPromoCodeInvalid.
func (s *promoCodeService) Validate(ctx context.Context, req *dto.ValidatePromoCodeRequest) (*dto.PromoCodeValidationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code, err := s.PromoCodeRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, ierr.NewError("promo code not found").
			WithHint("This promo code does not exist").
			WithReportableDetails(map[string]any{
				"code": req.Code,
			}).
			Mark(ierr.ErrPromoCodeInvalid)
	}

	now := time.Now().UTC()
	if !code.IsRedeemable(now) {
		return nil, ierr.NewError("promo code not redeemable").
			WithHint("This promo code has expired or reached its redemption limit").
			WithReportableDetails(map[string]any{
				"code": req.Code,
			}).
			Mark(ierr.ErrPromoCodeInvalid)
	}

	if !code.MeetsMinimumOrder(req.OrderAmount) {
		return nil, ierr.NewError("order amount below promo code minimum").
			WithHintf("This code requires a minimum order of %s", code.MinOrderAmount.String()).
			WithReportableDetails(map[string]any{
				"code":             req.Code,
				"order_amount":     req.OrderAmount,
				"min_order_amount": code.MinOrderAmount,
			}).
			Mark(ierr.ErrPromoCodeInvalid)
	}

	discount := code.CalculateDiscount(req.OrderAmount)
	finalAmount := req.OrderAmount.Sub(discount)
	if finalAmount.LessThan(decimal.Zero) {
		finalAmount = decimal.Zero
	}

	s.Logger.Infow("validated promo code",
		"code", req.Code,
		"order_amount", req.OrderAmount.String(),
		"discount", discount.String(),
	)

	return &dto.PromoCodeValidationResponse{
		Code:        code.Code,
		OrderAmount: req.OrderAmount,
		Discount:    discount,
		FinalAmount: finalAmount,
	}, nil
}

// RecordRedemption bumps the redemption count after a successful payment
func (s *promoCodeService) RecordRedemption(ctx context.Context, codeStr string) error {
	code, err := s.PromoCodeRepo.GetByCode(ctx, codeStr)
	if err != nil {
		return err
	}
	return s.PromoCodeRepo.IncrementRedemptions(ctx, code.ID)
}
