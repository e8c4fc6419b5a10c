package service

import (
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/boostpack"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/draw"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/membership"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/plan"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/user"
	"github.com/Unicash-organization/unicash-entitlement/internal/testutil"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
)

// testServiceParams wires ServiceParams to the suite's in-memory stores
func testServiceParams(b *testutil.BaseServiceSuite) ServiceParams {
	stores := b.GetStores()
	return ServiceParams{
		Logger:               b.GetLogger(),
		Config:               b.GetConfig(),
		Cache:                b.GetCache(),
		IdempotencyGenerator: b.GetIdempotencyGenerator(),
		PaymentGateway:       b.GetPaymentGateway(),
		UserRepo:             stores.UserRepo,
		PlanRepo:             stores.PlanRepo,
		BoostPackRepo:        stores.BoostPackRepo,
		MembershipRepo:       stores.MembershipRepo,
		CreditRepo:           stores.CreditRepo,
		PromoCodeRepo:        stores.PromoCodeRepo,
		DrawRepo:             stores.DrawRepo,
		RenewalRepo:          stores.RenewalRepo,
	}
}

func newTestUser(id string) *user.User {
	return &user.User{
		ID:                  id,
		Email:               id + "@example.com",
		ProviderCustomerRef: "cus_" + id,
		BaseModel: types.BaseModel{
			Status: types.StatusPublished,
		},
	}
}

func newTestPlan(id string, tier types.PlanTier, price int64, credits int64) *plan.Plan {
	return &plan.Plan{
		ID:                         id,
		Name:                       id,
		Tier:                       tier,
		PriceMonthly:               decimal.NewFromInt(price),
		FreeCreditsPerPeriod:       credits,
		GrandPrizeEntriesPerPeriod: 1,
		BaseModel: types.BaseModel{
			Status: types.StatusPublished,
		},
	}
}

func newTestBoostPack(id string, price int64, credits int64) *boostpack.BoostPack {
	return &boostpack.BoostPack{
		ID:      id,
		Name:    id,
		Price:   decimal.NewFromInt(price),
		Credits: credits,
		BaseModel: types.BaseModel{
			Status: types.StatusPublished,
		},
	}
}

func newTestDraw(id string, cost int64, cap int, requiresMembership bool) *draw.Draw {
	return &draw.Draw{
		ID:                 id,
		Name:               id,
		RequiresMembership: requiresMembership,
		CostPerEntry:       cost,
		Cap:                cap,
		ClosesAt:           time.Now().UTC().Add(24 * time.Hour),
		BaseModel: types.BaseModel{
			Status: types.StatusPublished,
		},
	}
}

func newActiveMembership(id, userID, planID string) *membership.Membership {
	now := time.Now().UTC()
	periodEnd := now.Add(30 * 24 * time.Hour)
	return &membership.Membership{
		ID:                 id,
		UserID:             userID,
		PlanID:             planID,
		MembershipStatus:   types.MembershipStatusActive,
		CurrentPeriodStart: &now,
		CurrentPeriodEnd:   &periodEnd,
		BaseModel: types.BaseModel{
			Status: types.StatusPublished,
		},
	}
}
