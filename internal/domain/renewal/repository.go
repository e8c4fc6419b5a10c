package renewal

import (
	"context"
)

// Repository defines the interface for renewal record persistence
type Repository interface {
	Create(ctx context.Context, r *Record) error
	Get(ctx context.Context, id string) (*Record, error)

	// Update fails with ErrInvalidOperation when the stored record is already
	// in a terminal status.
	Update(ctx context.Context, r *Record) error
	ListByMembership(ctx context.Context, membershipID string) ([]*Record, error)
}
