package dto

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/shopspring/decimal"
)

// ValidatePromoCodeRequest re-validates a code against a live order amount.
// Callers must re-submit whenever the order amount changes.
type ValidatePromoCodeRequest struct {
	Code        string          `json:"code" binding:"required"`
	OrderAmount decimal.Decimal `json:"order_amount"`
}

func (r *ValidatePromoCodeRequest) Validate() error {
	if r.Code == "" {
		return ierr.NewError("code is required").
			WithHint("Enter a promo code").
			Mark(ierr.ErrValidation)
	}
	if r.OrderAmount.IsNegative() {
		return ierr.NewError("order amount cannot be negative").
			WithHint("Invalid order amount").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PromoCodeValidationResponse is the discount computed for the submitted
// order amount
type PromoCodeValidationResponse struct {
	Code        string          `json:"code"`
	OrderAmount decimal.Decimal `json:"order_amount"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}
