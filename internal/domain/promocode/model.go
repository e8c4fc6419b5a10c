package promocode

import (
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
)

// PromoCode represents a discount code. Stateless with respect to checkout:
// it is re-evaluated against the live order amount on every request and never
// cached across a changing cart.
type PromoCode struct {
	ID   string `db:"id" json:"id"`
	Code string `db:"code" json:"code"`

	RedeemAfter      *time.Time `db:"redeem_after" json:"redeem_after,omitempty"`
	RedeemBefore     *time.Time `db:"redeem_before" json:"redeem_before,omitempty"`
	MaxRedemptions   *int       `db:"max_redemptions" json:"max_redemptions,omitempty"`
	TotalRedemptions int        `db:"total_redemptions" json:"total_redemptions"`

	DiscountType   types.PromoDiscountType `db:"discount_type" json:"discount_type"`
	AmountOff      decimal.Decimal         `db:"amount_off" json:"amount_off"`
	PercentageOff  decimal.Decimal         `db:"percentage_off" json:"percentage_off"`
	MinOrderAmount decimal.Decimal         `db:"min_order_amount" json:"min_order_amount"`

	types.BaseModel
}

func (c *PromoCode) TableName() string {
	return "promo_codes"
}

// IsRedeemable checks the validity window and redemption count
func (c *PromoCode) IsRedeemable(now time.Time) bool {
	if c.Status != types.StatusPublished {
		return false
	}

	if c.RedeemAfter != nil && now.Before(*c.RedeemAfter) {
		return false
	}

	if c.RedeemBefore != nil && now.After(*c.RedeemBefore) {
		return false
	}

	if c.MaxRedemptions != nil && c.TotalRedemptions >= *c.MaxRedemptions {
		return false
	}

	return true
}

// MeetsMinimumOrder checks the code's minimum-order rule against an order amount
func (c *PromoCode) MeetsMinimumOrder(orderAmount decimal.Decimal) bool {
	return orderAmount.GreaterThanOrEqual(c.MinOrderAmount)
}

// CalculateDiscount calculates the discount amount for a given order amount.
// The result is capped at the order amount so the final total never goes
// below zero.
func (c *PromoCode) CalculateDiscount(orderAmount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.DiscountType {
	case types.PromoDiscountTypeFlat:
		discount = c.AmountOff
	case types.PromoDiscountTypePercentage:
		discount = orderAmount.Mul(c.PercentageOff).Div(decimal.NewFromInt(100))
	default:
		discount = decimal.Zero
	}

	if discount.GreaterThan(orderAmount) {
		return orderAmount
	}
	return discount
}
