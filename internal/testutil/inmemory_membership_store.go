package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/membership"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// InMemoryMembershipStore is an in-memory implementation of the membership
// repository, including the check-and-set lock semantics.
type InMemoryMembershipStore struct {
	mu          sync.Mutex
	memberships map[string]*membership.Membership
}

// NewInMemoryMembershipStore creates a new instance of InMemoryMembershipStore
func NewInMemoryMembershipStore() *InMemoryMembershipStore {
	return &InMemoryMembershipStore{
		memberships: make(map[string]*membership.Membership),
	}
}

func (r *InMemoryMembershipStore) Create(ctx context.Context, m *membership.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.memberships[m.ID]; exists {
		return ierr.NewError("membership already exists").
			WithHint("Membership already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	for _, existing := range r.memberships {
		if existing.UserID == m.UserID {
			return ierr.NewError("user already has a membership").
				WithHint("A user can hold only one membership").
				Mark(ierr.ErrAlreadyExists)
		}
	}
	r.memberships[m.ID] = m
	return nil
}

func (r *InMemoryMembershipStore) Get(ctx context.Context, id string) (*membership.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.memberships[id]
	if !exists {
		return nil, ierr.NewError("membership not found").
			WithHint("Membership not found").
			Mark(ierr.ErrNotFound)
	}
	return m, nil
}

func (r *InMemoryMembershipStore) GetByUserID(ctx context.Context, userID string) (*membership.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.memberships {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, ierr.NewError("membership not found").
		WithHint("Membership not found").
		Mark(ierr.ErrNotFound)
}

func (r *InMemoryMembershipStore) Update(ctx context.Context, m *membership.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.memberships[m.ID]; !exists {
		return ierr.NewError("membership not found").
			WithHint("Membership not found").
			Mark(ierr.ErrNotFound)
	}
	r.memberships[m.ID] = m
	return nil
}

// AcquireChangeLock mirrors the conditional-update semantics of the postgres
// implementation: it only succeeds when the flag flips from false to true.
func (r *InMemoryMembershipStore) AcquireChangeLock(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.memberships[id]
	if !exists {
		return ierr.NewError("membership not found").
			WithHint("Membership not found").
			Mark(ierr.ErrNotFound)
	}
	if m.IsProcessingChange {
		return ierr.NewError("membership change already in progress").
			WithHint("Another change to your membership is being processed; try again shortly").
			Mark(ierr.ErrConcurrentChange)
	}
	m.IsProcessingChange = true
	return nil
}

func (r *InMemoryMembershipStore) ReleaseChangeLock(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.memberships[id]
	if !exists {
		return ierr.NewError("membership not found").
			WithHint("Membership not found").
			Mark(ierr.ErrNotFound)
	}
	m.IsProcessingChange = false
	return nil
}

func (r *InMemoryMembershipStore) ListDueForRenewal(ctx context.Context, before time.Time) ([]*membership.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*membership.Membership
	for _, m := range r.memberships {
		if m.MembershipStatus == types.MembershipStatusActive &&
			!m.IsPaused &&
			m.CurrentPeriodEnd != nil &&
			!m.CurrentPeriodEnd.After(before) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *InMemoryMembershipStore) ListExpiredPauses(ctx context.Context, before time.Time) ([]*membership.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*membership.Membership
	for _, m := range r.memberships {
		if m.IsPaused && m.PauseExpiresAt != nil && !m.PauseExpiresAt.After(before) {
			out = append(out, m)
		}
	}
	return out, nil
}

// Clear removes all memberships from the store
func (r *InMemoryMembershipStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memberships = make(map[string]*membership.Membership)
}
