package service

import (
	"github.com/Unicash-organization/unicash-entitlement/internal/cache"
	"github.com/Unicash-organization/unicash-entitlement/internal/config"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/boostpack"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/credit"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/draw"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/membership"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/plan"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/promocode"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/renewal"
	"github.com/Unicash-organization/unicash-entitlement/internal/domain/user"
	"github.com/Unicash-organization/unicash-entitlement/internal/idempotency"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/payment"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	IdempotencyGenerator *idempotency.Generator
	PaymentGateway       payment.Gateway

	// Repositories
	UserRepo       user.Repository
	PlanRepo       plan.Repository
	BoostPackRepo  boostpack.Repository
	MembershipRepo membership.Repository
	CreditRepo     credit.Repository
	PromoCodeRepo  promocode.Repository
	DrawRepo       draw.Repository
	RenewalRepo    renewal.Repository
}
