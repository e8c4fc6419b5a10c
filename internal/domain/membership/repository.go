package membership

import (
	"context"
	"time"
)

// Repository defines the interface for membership persistence operations
type Repository interface {
	Create(ctx context.Context, m *Membership) error
	Get(ctx context.Context, id string) (*Membership, error)
	GetByUserID(ctx context.Context, userID string) (*Membership, error)
	Update(ctx context.Context, m *Membership) error

	// AcquireChangeLock atomically sets IsProcessingChange from false to true.
	// Returns ErrConcurrentChange if the lock is already held.
	AcquireChangeLock(ctx context.Context, id string) error

	// ReleaseChangeLock clears IsProcessingChange. Must be called on every
	// exit path of a locked transition; a stuck lock permanently blocks the
	// user's membership.
	ReleaseChangeLock(ctx context.Context, id string) error

	// ListDueForRenewal returns active memberships whose current period ends
	// at or before the given time.
	ListDueForRenewal(ctx context.Context, before time.Time) ([]*Membership, error)

	// ListExpiredPauses returns paused memberships whose pause window has
	// lapsed at or before the given time.
	ListExpiredPauses(ctx context.Context, before time.Time) ([]*Membership, error)
}
