package repository

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/credit"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"gorm.io/gorm"
)

type creditRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewCreditRepository creates a new postgres-backed credit ledger repository
func NewCreditRepository(db *gorm.DB, log *logger.Logger) credit.Repository {
	return &creditRepository{db: db, logger: log}
}

func (r *creditRepository) CreateEntry(ctx context.Context, e *credit.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return translateDBError(err, "credit ledger entry")
	}
	return nil
}

func (r *creditRepository) GetEntryByIdempotencyKey(ctx context.Context, key string) (*credit.LedgerEntry, error) {
	var e credit.LedgerEntry
	err := r.db.WithContext(ctx).
		First(&e, "idempotency_key = ? AND idempotency_key <> ''", key).Error
	if err != nil {
		return nil, translateDBError(err, "credit ledger entry")
	}
	return &e, nil
}

func (r *creditRepository) ListByUser(ctx context.Context, userID string) ([]*credit.LedgerEntry, error) {
	var entries []*credit.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, translateDBError(err, "credit ledger entry")
	}
	return entries, nil
}

func (r *creditRepository) ListByUserAndClass(ctx context.Context, userID string, class types.CreditClass) ([]*credit.LedgerEntry, error) {
	var entries []*credit.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND class = ?", userID, class).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, translateDBError(err, "credit ledger entry")
	}
	return entries, nil
}
