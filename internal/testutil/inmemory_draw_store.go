package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/draw"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// InMemoryDrawStore is an in-memory implementation of the draw repository. It
// reproduces the two constraints the postgres implementation enforces: the
// atomic entrant-cap check and the one-active-entry-per-(user, draw) rule.
type InMemoryDrawStore struct {
	mu      sync.Mutex
	draws   map[string]*draw.Draw
	entries map[string]*draw.Entry
}

// NewInMemoryDrawStore creates a new instance of InMemoryDrawStore
func NewInMemoryDrawStore() *InMemoryDrawStore {
	return &InMemoryDrawStore{
		draws:   make(map[string]*draw.Draw),
		entries: make(map[string]*draw.Entry),
	}
}

func (r *InMemoryDrawStore) CreateDraw(ctx context.Context, d *draw.Draw) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.draws[d.ID]; exists {
		return ierr.NewError("draw already exists").
			WithHint("Draw already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	r.draws[d.ID] = d
	return nil
}

func (r *InMemoryDrawStore) GetDraw(ctx context.Context, id string) (*draw.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, exists := r.draws[id]
	if !exists {
		return nil, ierr.NewError("draw not found").
			WithHint("Draw not found").
			Mark(ierr.ErrNotFound)
	}
	return d, nil
}

func (r *InMemoryDrawStore) ListDraws(ctx context.Context) ([]*draw.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*draw.Draw, 0, len(r.draws))
	for _, d := range r.draws {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ClosesAt.Before(out[j].ClosesAt)
	})
	return out, nil
}

func (r *InMemoryDrawStore) IncrementEntrants(ctx context.Context, drawID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, exists := r.draws[drawID]
	if !exists {
		return ierr.NewError("draw not found").
			WithHint("Draw not found").
			Mark(ierr.ErrNotFound)
	}
	if d.Cap != types.DrawCapUnlimited && d.EntrantCount >= d.Cap {
		return ierr.NewError("draw is sold out").
			WithHint("This draw has reached its entry cap").
			Mark(ierr.ErrDrawSoldOut)
	}
	d.EntrantCount++
	return nil
}

func (r *InMemoryDrawStore) CreateEntry(ctx context.Context, e *draw.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.ID]; exists {
		return ierr.NewError("draw entry already exists").
			WithHint("Draw entry already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	for _, existing := range r.entries {
		if existing.UserID == e.UserID && existing.DrawID == e.DrawID && !existing.IsRefunded {
			return ierr.NewError("user already has an active entry for this draw").
				WithHint("You have already entered this draw").
				Mark(ierr.ErrConflict)
		}
	}
	r.entries[e.ID] = e
	return nil
}

func (r *InMemoryDrawStore) UpdateEntry(ctx context.Context, e *draw.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.ID]; !exists {
		return ierr.NewError("draw entry not found").
			WithHint("Draw entry not found").
			Mark(ierr.ErrNotFound)
	}
	r.entries[e.ID] = e
	return nil
}

func (r *InMemoryDrawStore) GetEntryByIdempotencyKey(ctx context.Context, key string) (*draw.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if key != "" {
		for _, e := range r.entries {
			if e.IdempotencyKey == key {
				return e, nil
			}
		}
	}
	return nil, ierr.NewError("draw entry not found").
		WithHint("Draw entry not found").
		Mark(ierr.ErrNotFound)
}

func (r *InMemoryDrawStore) FindActiveEntry(ctx context.Context, userID, drawID string) (*draw.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.UserID == userID && e.DrawID == drawID && !e.IsRefunded {
			return e, nil
		}
	}
	return nil, ierr.NewError("draw entry not found").
		WithHint("Draw entry not found").
		Mark(ierr.ErrNotFound)
}

func (r *InMemoryDrawStore) ListEntriesByUser(ctx context.Context, userID string) ([]*draw.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*draw.Entry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryDrawStore) InvalidateEntriesByUser(ctx context.Context, userID string, reason types.DrawEntryRefundReason) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, e := range r.entries {
		if e.UserID == userID && !e.IsRefunded {
			e.IsRefunded = true
			e.RefundReason = reason
			count++
		}
	}
	return count, nil
}

// Clear removes all draws and entries from the store
func (r *InMemoryDrawStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws = make(map[string]*draw.Draw)
	r.entries = make(map[string]*draw.Entry)
}
