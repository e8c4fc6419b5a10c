package promocode

import (
	"context"
)

// Repository defines the interface for promo code persistence operations
type Repository interface {
	Create(ctx context.Context, c *PromoCode) error
	Get(ctx context.Context, id string) (*PromoCode, error)
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	IncrementRedemptions(ctx context.Context, id string) error
}
