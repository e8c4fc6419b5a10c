package types

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/samber/lo"
)

// PromoDiscountType is the discount rule of a promo code
type PromoDiscountType string

const (
	PromoDiscountTypeFlat       PromoDiscountType = "flat"
	PromoDiscountTypePercentage PromoDiscountType = "percentage"
)

func (t PromoDiscountType) String() string {
	return string(t)
}

func (t PromoDiscountType) Validate() error {
	allowed := []PromoDiscountType{PromoDiscountTypeFlat, PromoDiscountTypePercentage}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid promo discount type").
			WithHintf("Unknown discount type: %s", t).
			Mark(ierr.ErrValidation)
	}
	return nil
}
