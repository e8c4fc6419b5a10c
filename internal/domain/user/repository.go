package user

import (
	"context"
)

// Repository defines the interface for user persistence operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error

	// UpdateBalances overwrites the denormalized credit balances. Must be
	// called within the same transaction scope as the ledger append.
	UpdateBalances(ctx context.Context, id string, membershipCredits, boostCredits int64) error
}
