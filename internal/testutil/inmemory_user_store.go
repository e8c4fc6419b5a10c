package testutil

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/user"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
)

// InMemoryUserStore is an in-memory implementation of the user repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

// NewInMemoryUserStore creates a new instance of InMemoryUserStore
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func (r *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	return r.InMemoryStore.Create(ctx, u.ID, u)
}

func (r *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	return r.InMemoryStore.Get(ctx, id)
}

func (r *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := r.InMemoryStore.List(ctx, email,
		func(_ context.Context, u *user.User, filter interface{}) bool {
			return u.Email == filter.(string)
		}, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ierr.NewError("user not found").
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return users[0], nil
}

func (r *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	return r.InMemoryStore.Update(ctx, u.ID, u)
}

func (r *InMemoryUserStore) UpdateBalances(ctx context.Context, id string, membershipCredits, boostCredits int64) error {
	u, err := r.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	u.MembershipCredits = membershipCredits
	u.BoostCredits = boostCredits
	return r.InMemoryStore.Update(ctx, id, u)
}
