package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/promocode"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"gorm.io/gorm"
)

type promoCodeRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewPromoCodeRepository creates a new postgres-backed promo code repository
func NewPromoCodeRepository(db *gorm.DB, log *logger.Logger) promocode.Repository {
	return &promoCodeRepository{db: db, logger: log}
}

func (r *promoCodeRepository) Create(ctx context.Context, c *promocode.PromoCode) error {
	c.Code = strings.ToUpper(c.Code)
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return translateDBError(err, "promo code")
	}
	return nil
}

func (r *promoCodeRepository) Get(ctx context.Context, id string) (*promocode.PromoCode, error) {
	var c promocode.PromoCode
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err, "promo code")
	}
	return &c, nil
}

// GetByCode is case-insensitive; codes are stored uppercased
func (r *promoCodeRepository) GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error) {
	var c promocode.PromoCode
	err := r.db.WithContext(ctx).
		First(&c, "code = ?", strings.ToUpper(code)).Error
	if err != nil {
		return nil, translateDBError(err, "promo code")
	}
	return &c, nil
}

func (r *promoCodeRepository) IncrementRedemptions(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&promocode.PromoCode{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_redemptions": gorm.Expr("total_redemptions + 1"),
			"updated_at":        time.Now().UTC(),
		})
	if res.Error != nil {
		return translateDBError(res.Error, "promo code")
	}
	if res.RowsAffected == 0 {
		return ierr.NewError("promo code not found").
			WithHint("Promo code not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
