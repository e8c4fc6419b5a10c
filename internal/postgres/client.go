package postgres

import (
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/config"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/boostpack"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/credit"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/draw"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/membership"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/plan"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/promocode"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/renewal"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/user"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens the postgres connection shared by every repository.
// TranslateError is enabled so duplicate-key violations surface as
// gorm.ErrDuplicatedKey and can be mapped to domain conflicts.
func NewDB(cfg *config.Configuration, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.Postgres.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"db", cfg.Postgres.DBName,
	)

	return db, nil
}

// Migrate applies the schema for all persisted models. The partial unique
// index on non-refunded draw entries backs the one-active-entry-per-draw
// rule and cannot be expressed as a struct tag.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&plan.Plan{},
		&boostpack.BoostPack{},
		&membership.Membership{},
		&credit.LedgerEntry{},
		&promocode.PromoCode{},
		&draw.Draw{},
		&draw.Entry{},
		&renewal.Record{},
	); err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_draw_entries_active_unique
		 ON draw_entries (user_id, draw_id) WHERE NOT is_refunded`,
	).Error
}
