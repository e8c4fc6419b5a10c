package testutil

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/plan"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// InMemoryPlanStore is an in-memory implementation of the plan repository
type InMemoryPlanStore struct {
	*InMemoryStore[*plan.Plan]
}

// NewInMemoryPlanStore creates a new instance of InMemoryPlanStore
func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		InMemoryStore: NewInMemoryStore[*plan.Plan](),
	}
}

func (r *InMemoryPlanStore) Create(ctx context.Context, p *plan.Plan) error {
	return r.InMemoryStore.Create(ctx, p.ID, p)
}

func (r *InMemoryPlanStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	return r.InMemoryStore.Get(ctx, id)
}

func (r *InMemoryPlanStore) List(ctx context.Context) ([]*plan.Plan, error) {
	return r.InMemoryStore.List(ctx, nil,
		func(_ context.Context, p *plan.Plan, _ interface{}) bool {
			return p.Status == types.StatusPublished
		},
		func(i, j *plan.Plan) bool {
			return i.PriceMonthly.LessThan(j.PriceMonthly)
		},
	)
}
