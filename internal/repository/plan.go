package repository

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/plan"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"gorm.io/gorm"
)

type planRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewPlanRepository creates a new postgres-backed plan repository
func NewPlanRepository(db *gorm.DB, log *logger.Logger) plan.Repository {
	return &planRepository{db: db, logger: log}
}

func (r *planRepository) Create(ctx context.Context, p *plan.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return translateDBError(err, "plan")
	}
	return nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*plan.Plan, error) {
	var p plan.Plan
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err, "plan")
	}
	return &p, nil
}

func (r *planRepository) List(ctx context.Context) ([]*plan.Plan, error) {
	var plans []*plan.Plan
	err := r.db.WithContext(ctx).
		Where("status = ?", types.StatusPublished).
		Order("price_monthly ASC").
		Find(&plans).Error
	if err != nil {
		return nil, translateDBError(err, "plan")
	}
	return plans, nil
}
