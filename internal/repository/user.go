package repository

import (
	"context"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/user"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"gorm.io/gorm"
)

type userRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewUserRepository creates a new postgres-backed user repository
func NewUserRepository(db *gorm.DB, log *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: log}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return translateDBError(err, "user")
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err, "user")
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, translateDBError(err, "user")
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return translateDBError(err, "user")
	}
	return nil
}

func (r *userRepository) UpdateBalances(ctx context.Context, id string, membershipCredits, boostCredits int64) error {
	res := r.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"membership_credits": membershipCredits,
			"boost_credits":      boostCredits,
			"updated_at":         time.Now().UTC(),
		})
	if res.Error != nil {
		return translateDBError(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return ierr.NewError("user not found").
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
