package repository

import (
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/boostpack"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/credit"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/draw"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/membership"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/plan"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/promocode"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/renewal"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/user"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

// Repositories bundles every postgres-backed repository implementation
type Repositories struct {
	User       user.Repository
	Plan       plan.Repository
	BoostPack  boostpack.Repository
	Membership membership.Repository
	Credit     credit.Repository
	PromoCode  promocode.Repository
	Draw       draw.Repository
	Renewal    renewal.Repository
}

// New builds the full repository set on a shared gorm connection
func New(db *gorm.DB, log *logger.Logger) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db, log),
		Plan:       NewPlanRepository(db, log),
		BoostPack:  NewBoostPackRepository(db, log),
		Membership: NewMembershipRepository(db, log),
		Credit:     NewCreditRepository(db, log),
		PromoCode:  NewPromoCodeRepository(db, log),
		Draw:       NewDrawRepository(db, log),
		Renewal:    NewRenewalRepository(db, log),
	}
}

// translateDBError maps gorm errors to domain errors
func translateDBError(err error, resource string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ierr.WithError(err).
			WithHintf("%s not found", resource).
			Mark(ierr.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ierr.WithError(err).
			WithHintf("%s already exists", resource).
			Mark(ierr.ErrAlreadyExists)
	default:
		return ierr.WithError(err).
			WithHintf("failed to access %s", resource).
			Mark(ierr.ErrDatabase)
	}
}
