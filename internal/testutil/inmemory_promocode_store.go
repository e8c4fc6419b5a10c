package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/promocode"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
)

// InMemoryPromoCodeStore is an in-memory implementation of the promo code repository
type InMemoryPromoCodeStore struct {
	mu    sync.RWMutex
	codes map[string]*promocode.PromoCode
}

// NewInMemoryPromoCodeStore creates a new instance of InMemoryPromoCodeStore
func NewInMemoryPromoCodeStore() *InMemoryPromoCodeStore {
	return &InMemoryPromoCodeStore{
		codes: make(map[string]*promocode.PromoCode),
	}
}

func (r *InMemoryPromoCodeStore) Create(ctx context.Context, c *promocode.PromoCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codes[c.ID]; exists {
		return ierr.NewError("promo code already exists").
			WithHint("Promo code already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	c.Code = strings.ToUpper(c.Code)
	r.codes[c.ID] = c
	return nil
}

func (r *InMemoryPromoCodeStore) Get(ctx context.Context, id string) (*promocode.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.codes[id]
	if !exists {
		return nil, ierr.NewError("promo code not found").
			WithHint("Promo code not found").
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (r *InMemoryPromoCodeStore) GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := strings.ToUpper(code)
	for _, c := range r.codes {
		if c.Code == normalized {
			return c, nil
		}
	}
	return nil, ierr.NewError("promo code not found").
		WithHint("Promo code not found").
		Mark(ierr.ErrNotFound)
}

func (r *InMemoryPromoCodeStore) IncrementRedemptions(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.codes[id]
	if !exists {
		return ierr.NewError("promo code not found").
			WithHint("Promo code not found").
			Mark(ierr.ErrNotFound)
	}
	c.TotalRedemptions++
	return nil
}

// Clear removes all promo codes from the store
func (r *InMemoryPromoCodeStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = make(map[string]*promocode.PromoCode)
}
