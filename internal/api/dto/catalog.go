package dto

import (
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/boostpack"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/plan"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
)

// PlanResponse is the catalog view of a membership plan
type PlanResponse struct {
	ID                         string          `json:"id"`
	Name                       string          `json:"name"`
	Tier                       types.PlanTier  `json:"tier"`
	PriceMonthly               decimal.Decimal `json:"price_monthly"`
	FreeCreditsPerPeriod       int64           `json:"free_credits_per_period"`
	GrandPrizeEntriesPerPeriod int64           `json:"grand_prize_entries_per_period"`
}

// NewPlanResponse builds the catalog response from the domain plan
func NewPlanResponse(p *plan.Plan) *PlanResponse {
	if p == nil {
		return nil
	}
	return &PlanResponse{
		ID:                         p.ID,
		Name:                       p.Name,
		Tier:                       p.Tier,
		PriceMonthly:               p.PriceMonthly,
		FreeCreditsPerPeriod:       p.FreeCreditsPerPeriod,
		GrandPrizeEntriesPerPeriod: p.GrandPrizeEntriesPerPeriod,
	}
}

// BoostPackResponse is the catalog view of a boost pack
type BoostPackResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Credits int64           `json:"credits"`
}

// NewBoostPackResponse builds the catalog response from the domain boost pack
func NewBoostPackResponse(b *boostpack.BoostPack) *BoostPackResponse {
	if b == nil {
		return nil
	}
	return &BoostPackResponse{
		ID:      b.ID,
		Name:    b.Name,
		Price:   b.Price,
		Credits: b.Credits,
	}
}
