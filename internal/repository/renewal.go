package repository

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/renewal"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"gorm.io/gorm"
)

type renewalRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewRenewalRepository creates a new postgres-backed renewal record repository
func NewRenewalRepository(db *gorm.DB, log *logger.Logger) renewal.Repository {
	return &renewalRepository{db: db, logger: log}
}

func (r *renewalRepository) Create(ctx context.Context, rec *renewal.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return translateDBError(err, "renewal record")
	}
	return nil
}

func (r *renewalRepository) Get(ctx context.Context, id string) (*renewal.Record, error) {
	var rec renewal.Record
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err, "renewal record")
	}
	return &rec, nil
}

// Update refuses to mutate a record that has already reached a terminal
// status; renewal history is append-only once settled.
func (r *renewalRepository) Update(ctx context.Context, rec *renewal.Record) error {
	stored, err := r.Get(ctx, rec.ID)
	if err != nil {
		return err
	}
	if stored.RenewalStatus.IsTerminal() {
		return ierr.NewError("renewal record is final").
			WithHint("A settled renewal record cannot be changed").
			WithReportableDetails(map[string]any{
				"record_id": rec.ID,
				"status":    stored.RenewalStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return translateDBError(err, "renewal record")
	}
	return nil
}

func (r *renewalRepository) ListByMembership(ctx context.Context, membershipID string) ([]*renewal.Record, error) {
	var records []*renewal.Record
	err := r.db.WithContext(ctx).
		Where("membership_id = ?", membershipID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, translateDBError(err, "renewal record")
	}
	return records, nil
}
