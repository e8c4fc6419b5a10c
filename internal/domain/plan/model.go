package plan

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
)

// Plan represents a membership plan tier. Immutable once referenced by an
// active membership period.
type Plan struct {
	ID                         string          `db:"id" json:"id"`
	Name                       string          `db:"name" json:"name"`
	Tier                       types.PlanTier  `db:"tier" json:"tier"`
	PriceMonthly               decimal.Decimal `db:"price_monthly" json:"price_monthly"`
	FreeCreditsPerPeriod       int64           `db:"free_credits_per_period" json:"free_credits_per_period"`
	GrandPrizeEntriesPerPeriod int64           `db:"grand_prize_entries_per_period" json:"grand_prize_entries_per_period"`

	types.BaseModel
}

func (p *Plan) TableName() string {
	return "plans"
}

func (p *Plan) Validate() error {
	if err := p.Tier.Validate(); err != nil {
		return err
	}
	if p.PriceMonthly.IsNegative() {
		return ierr.NewError("plan price cannot be negative").
			WithHint("Plan price must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsUpgradeFrom reports whether switching from other to p is an upgrade.
// A change is an upgrade when the new tier is strictly higher, or the tier is
// equal and the price is higher, or both are equal and the credit allotment is
// larger. Anything else is a downgrade.
func (p *Plan) IsUpgradeFrom(other *Plan) bool {
	if p.Tier != other.Tier {
		return p.Tier.Above(other.Tier)
	}
	if !p.PriceMonthly.Equal(other.PriceMonthly) {
		return p.PriceMonthly.GreaterThan(other.PriceMonthly)
	}
	return p.FreeCreditsPerPeriod > other.FreeCreditsPerPeriod
}
