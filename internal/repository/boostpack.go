package repository

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/boostpack"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"gorm.io/gorm"
)

type boostPackRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewBoostPackRepository creates a new postgres-backed boost pack repository
func NewBoostPackRepository(db *gorm.DB, log *logger.Logger) boostpack.Repository {
	return &boostPackRepository{db: db, logger: log}
}

func (r *boostPackRepository) Create(ctx context.Context, b *boostpack.BoostPack) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return translateDBError(err, "boost pack")
	}
	return nil
}

func (r *boostPackRepository) Get(ctx context.Context, id string) (*boostpack.BoostPack, error) {
	var b boostpack.BoostPack
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err, "boost pack")
	}
	return &b, nil
}

func (r *boostPackRepository) List(ctx context.Context) ([]*boostpack.BoostPack, error) {
	var packs []*boostpack.BoostPack
	err := r.db.WithContext(ctx).
		Where("status = ?", types.StatusPublished).
		Order("price ASC").
		Find(&packs).Error
	if err != nil {
		return nil, translateDBError(err, "boost pack")
	}
	return packs, nil
}
