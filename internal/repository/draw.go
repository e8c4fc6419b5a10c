package repository

import (
	"context"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/draw"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

type drawRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewDrawRepository creates a new postgres-backed draw repository
func NewDrawRepository(db *gorm.DB, log *logger.Logger) draw.Repository {
	return &drawRepository{db: db, logger: log}
}

func (r *drawRepository) CreateDraw(ctx context.Context, d *draw.Draw) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return translateDBError(err, "draw")
	}
	return nil
}

func (r *drawRepository) GetDraw(ctx context.Context, id string) (*draw.Draw, error) {
	var d draw.Draw
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, translateDBError(err, "draw")
	}
	return &d, nil
}

func (r *drawRepository) ListDraws(ctx context.Context) ([]*draw.Draw, error) {
	var draws []*draw.Draw
	err := r.db.WithContext(ctx).
		Where("status = ?", types.StatusPublished).
		Order("closes_at ASC").
		Find(&draws).Error
	if err != nil {
		return nil, translateDBError(err, "draw")
	}
	return draws, nil
}

// IncrementEntrants bumps the entrant count only while below the cap; the
// guard and increment are one statement so the cap holds under concurrency.
func (r *drawRepository) IncrementEntrants(ctx context.Context, drawID string) error {
	res := r.db.WithContext(ctx).Model(&draw.Draw{}).
		Where("id = ? AND (cap = ? OR entrant_count < cap)", drawID, types.DrawCapUnlimited).
		Updates(map[string]interface{}{
			"entrant_count": gorm.Expr("entrant_count + 1"),
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return translateDBError(res.Error, "draw")
	}
	if res.RowsAffected == 0 {
		return ierr.NewError("draw is sold out").
			WithHint("This draw has reached its entry cap").
			WithReportableDetails(map[string]any{
				"draw_id": drawID,
			}).
			Mark(ierr.ErrDrawSoldOut)
	}
	return nil
}

// CreateEntry relies on the partial unique index over non-refunded
// (user_id, draw_id) pairs; a duplicate submission surfaces as a conflict.
func (r *drawRepository) CreateEntry(ctx context.Context, e *draw.Entry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHint("An entry for this draw already exists").
				Mark(ierr.ErrConflict)
		}
		return translateDBError(err, "draw entry")
	}
	return nil
}

func (r *drawRepository) UpdateEntry(ctx context.Context, e *draw.Entry) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		return translateDBError(err, "draw entry")
	}
	return nil
}

func (r *drawRepository) GetEntryByIdempotencyKey(ctx context.Context, key string) (*draw.Entry, error) {
	var e draw.Entry
	err := r.db.WithContext(ctx).
		First(&e, "idempotency_key = ? AND idempotency_key <> ''", key).Error
	if err != nil {
		return nil, translateDBError(err, "draw entry")
	}
	return &e, nil
}

func (r *drawRepository) FindActiveEntry(ctx context.Context, userID, drawID string) (*draw.Entry, error) {
	var e draw.Entry
	err := r.db.WithContext(ctx).
		First(&e, "user_id = ? AND draw_id = ? AND is_refunded = ?", userID, drawID, false).Error
	if err != nil {
		return nil, translateDBError(err, "draw entry")
	}
	return &e, nil
}

func (r *drawRepository) ListEntriesByUser(ctx context.Context, userID string) ([]*draw.Entry, error) {
	var entries []*draw.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, translateDBError(err, "draw entry")
	}
	return entries, nil
}

func (r *drawRepository) InvalidateEntriesByUser(ctx context.Context, userID string, reason types.DrawEntryRefundReason) (int, error) {
	res := r.db.WithContext(ctx).Model(&draw.Entry{}).
		Where("user_id = ? AND is_refunded = ?", userID, false).
		Updates(map[string]interface{}{
			"is_refunded":   true,
			"refund_reason": reason,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, translateDBError(res.Error, "draw entry")
	}
	return int(res.RowsAffected), nil
}
