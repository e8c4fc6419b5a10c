package repository

import (
	"context"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/membership"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"gorm.io/gorm"
)

type membershipRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewMembershipRepository creates a new postgres-backed membership repository
func NewMembershipRepository(db *gorm.DB, log *logger.Logger) membership.Repository {
	return &membershipRepository{db: db, logger: log}
}

func (r *membershipRepository) Create(ctx context.Context, m *membership.Membership) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateDBError(err, "membership")
	}
	return nil
}

func (r *membershipRepository) Get(ctx context.Context, id string) (*membership.Membership, error) {
	var m membership.Membership
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err, "membership")
	}
	return &m, nil
}

func (r *membershipRepository) GetByUserID(ctx context.Context, userID string) (*membership.Membership, error) {
	var m membership.Membership
	if err := r.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error; err != nil {
		return nil, translateDBError(err, "membership")
	}
	return &m, nil
}

func (r *membershipRepository) Update(ctx context.Context, m *membership.Membership) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translateDBError(err, "membership")
	}
	return nil
}

// AcquireChangeLock is a conditional update: it only succeeds when the lock
// flag flips from false to true in this statement, so two concurrent callers
// can never both hold the lock.
func (r *membershipRepository) AcquireChangeLock(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&membership.Membership{}).
		Where("id = ? AND is_processing_change = ?", id, false).
		Updates(map[string]interface{}{
			"is_processing_change": true,
			"updated_at":           time.Now().UTC(),
		})
	if res.Error != nil {
		return translateDBError(res.Error, "membership")
	}
	if res.RowsAffected == 0 {
		return ierr.NewError("membership change already in progress").
			WithHint("Another change to your membership is being processed; try again shortly").
			WithReportableDetails(map[string]any{
				"membership_id": id,
			}).
			Mark(ierr.ErrConcurrentChange)
	}
	return nil
}

func (r *membershipRepository) ReleaseChangeLock(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&membership.Membership{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_processing_change": false,
			"updated_at":           time.Now().UTC(),
		})
	if res.Error != nil {
		return translateDBError(res.Error, "membership")
	}
	return nil
}

func (r *membershipRepository) ListDueForRenewal(ctx context.Context, before time.Time) ([]*membership.Membership, error) {
	var memberships []*membership.Membership
	err := r.db.WithContext(ctx).
		Where("membership_status = ? AND is_paused = ? AND current_period_end <= ?",
			types.MembershipStatusActive, false, before).
		Find(&memberships).Error
	if err != nil {
		return nil, translateDBError(err, "membership")
	}
	return memberships, nil
}

func (r *membershipRepository) ListExpiredPauses(ctx context.Context, before time.Time) ([]*membership.Membership, error) {
	var memberships []*membership.Membership
	err := r.db.WithContext(ctx).
		Where("is_paused = ? AND pause_expires_at <= ?", true, before).
		Find(&memberships).Error
	if err != nil {
		return nil, translateDBError(err, "membership")
	}
	return memberships, nil
}
