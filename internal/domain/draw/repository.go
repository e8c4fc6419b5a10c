package draw

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// Repository defines the interface for draw and draw entry persistence
type Repository interface {
	// Draw operations
	CreateDraw(ctx context.Context, d *Draw) error
	GetDraw(ctx context.Context, id string) (*Draw, error)
	ListDraws(ctx context.Context) ([]*Draw, error)

	// IncrementEntrants bumps the entrant count, failing with ErrDrawSoldOut
	// when the cap has been reached. The check and increment are atomic.
	IncrementEntrants(ctx context.Context, drawID string) error

	// Entry operations
	// CreateEntry fails with ErrConflict when a non-refunded entry already
	// exists for the same (user, draw) pair.
	CreateEntry(ctx context.Context, e *Entry) error
	UpdateEntry(ctx context.Context, e *Entry) error
	GetEntryByIdempotencyKey(ctx context.Context, key string) (*Entry, error)
	FindActiveEntry(ctx context.Context, userID, drawID string) (*Entry, error)
	ListEntriesByUser(ctx context.Context, userID string) ([]*Entry, error)

	// InvalidateEntriesByUser marks every non-refunded entry for the user as
	// refunded with the given reason. Returns the number of entries invalidated.
	InvalidateEntriesByUser(ctx context.Context, userID string, reason types.DrawEntryRefundReason) (int, error)
}
