package types

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
)

// PlanTier is the ordered tier of a membership plan. Comparisons between
// plans use this total order, never string lookups.
type PlanTier string

const (
	PlanTierBasic   PlanTier = "basic"
	PlanTierPremium PlanTier = "premium"
	PlanTierUniOne  PlanTier = "uni_one"
	PlanTierUniPlus PlanTier = "uni_plus"
	PlanTierUniMax  PlanTier = "uni_max"
	PlanTierElite   PlanTier = "elite"
)

// tierRank defines the total order over plan tiers
var tierRank = map[PlanTier]int{
	PlanTierBasic:   0,
	PlanTierPremium: 1,
	PlanTierUniOne:  2,
	PlanTierUniPlus: 3,
	PlanTierUniMax:  4,
	PlanTierElite:   5,
}

func (t PlanTier) String() string {
	return string(t)
}

// Rank returns the position of the tier in the total order
func (t PlanTier) Rank() int {
	return tierRank[t]
}

// Above reports whether t is strictly higher than other in the tier order
func (t PlanTier) Above(other PlanTier) bool {
	return tierRank[t] > tierRank[other]
}

func (t PlanTier) Validate() error {
	if _, ok := tierRank[t]; !ok {
		return ierr.NewError("invalid plan tier").
			WithHintf("Unknown plan tier: %s", t).
			Mark(ierr.ErrValidation)
	}
	return nil
}
