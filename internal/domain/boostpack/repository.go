package boostpack

import (
	"context"
)

// Repository defines the interface for boost pack catalog operations
type Repository interface {
	Create(ctx context.Context, b *BoostPack) error
	Get(ctx context.Context, id string) (*BoostPack, error)
	List(ctx context.Context) ([]*BoostPack, error)
}
