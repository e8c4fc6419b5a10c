package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/credit"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// InMemoryCreditStore is an in-memory implementation of the append-only
// credit ledger repository
type InMemoryCreditStore struct {
	mu      sync.RWMutex
	entries []*credit.LedgerEntry
}

// NewInMemoryCreditStore creates a new instance of InMemoryCreditStore
func NewInMemoryCreditStore() *InMemoryCreditStore {
	return &InMemoryCreditStore{}
}

func (r *InMemoryCreditStore) CreateEntry(ctx context.Context, e *credit.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	return nil
}

func (r *InMemoryCreditStore) GetEntryByIdempotencyKey(ctx context.Context, key string) (*credit.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if key != "" {
		for _, e := range r.entries {
			if e.IdempotencyKey == key {
				return e, nil
			}
		}
	}
	return nil, ierr.NewError("credit ledger entry not found").
		WithHint("Ledger entry not found").
		Mark(ierr.ErrNotFound)
}

func (r *InMemoryCreditStore) ListByUser(ctx context.Context, userID string) ([]*credit.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*credit.LedgerEntry
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

func (r *InMemoryCreditStore) ListByUserAndClass(ctx context.Context, userID string, class types.CreditClass) ([]*credit.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*credit.LedgerEntry
	for _, e := range r.entries {
		if e.UserID == userID && e.Class == class {
			out = append(out, e)
		}
	}
	return out, nil
}

// Clear removes all ledger entries from the store
func (r *InMemoryCreditStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
