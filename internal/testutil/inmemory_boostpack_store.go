package testutil

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/boostpack"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// InMemoryBoostPackStore is an in-memory implementation of the boost pack repository
type InMemoryBoostPackStore struct {
	*InMemoryStore[*boostpack.BoostPack]
}

// NewInMemoryBoostPackStore creates a new instance of InMemoryBoostPackStore
func NewInMemoryBoostPackStore() *InMemoryBoostPackStore {
	return &InMemoryBoostPackStore{
		InMemoryStore: NewInMemoryStore[*boostpack.BoostPack](),
	}
}

func (r *InMemoryBoostPackStore) Create(ctx context.Context, b *boostpack.BoostPack) error {
	return r.InMemoryStore.Create(ctx, b.ID, b)
}

func (r *InMemoryBoostPackStore) Get(ctx context.Context, id string) (*boostpack.BoostPack, error) {
	return r.InMemoryStore.Get(ctx, id)
}

func (r *InMemoryBoostPackStore) List(ctx context.Context) ([]*boostpack.BoostPack, error) {
	return r.InMemoryStore.List(ctx, nil,
		func(_ context.Context, b *boostpack.BoostPack, _ interface{}) bool {
			return b.Status == types.StatusPublished
		},
		func(i, j *boostpack.BoostPack) bool {
			return i.Price.LessThan(j.Price)
		},
	)
}
