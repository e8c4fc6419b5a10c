package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/renewal"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
)

// InMemoryRenewalStore is an in-memory implementation of the renewal record repository
type InMemoryRenewalStore struct {
	mu      sync.RWMutex
	records map[string]*renewal.Record
}

// NewInMemoryRenewalStore creates a new instance of InMemoryRenewalStore
func NewInMemoryRenewalStore() *InMemoryRenewalStore {
	return &InMemoryRenewalStore{
		records: make(map[string]*renewal.Record),
	}
}

func (r *InMemoryRenewalStore) Create(ctx context.Context, rec *renewal.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[rec.ID]; exists {
		return ierr.NewError("renewal record already exists").
			WithHint("Renewal record already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	r.records[rec.ID] = rec
	return nil
}

func (r *InMemoryRenewalStore) Get(ctx context.Context, id string) (*renewal.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.records[id]
	if !exists {
		return nil, ierr.NewError("renewal record not found").
			WithHint("Renewal record not found").
			Mark(ierr.ErrNotFound)
	}
	return rec, nil
}

func (r *InMemoryRenewalStore) Update(ctx context.Context, rec *renewal.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.records[rec.ID]
	if !exists {
		return ierr.NewError("renewal record not found").
			WithHint("Renewal record not found").
			Mark(ierr.ErrNotFound)
	}
	if stored.RenewalStatus.IsTerminal() {
		return ierr.NewError("renewal record is already finalized").
			WithHint("Finalized renewal records cannot be modified").
			Mark(ierr.ErrInvalidOperation)
	}
	r.records[rec.ID] = rec
	return nil
}

func (r *InMemoryRenewalStore) ListByMembership(ctx context.Context, membershipID string) ([]*renewal.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*renewal.Record
	for _, rec := range r.records {
		if rec.MembershipID == membershipID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PeriodStart.Before(out[j].PeriodStart)
	})
	return out, nil
}

// Clear removes all renewal records from the store
func (r *InMemoryRenewalStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[string]*renewal.Record)
}
