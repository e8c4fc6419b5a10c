package testutil

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/cache"
	"github.com/Unicash-organization/unicash-entitlement/internal/config"
	"github.com/Unicash-organization/unicash-entitlement/internal/idempotency"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores is a collection of in-memory stores for testing
type Stores struct {
	UserRepo       *InMemoryUserStore
	PlanRepo       *InMemoryPlanStore
	BoostPackRepo  *InMemoryBoostPackStore
	MembershipRepo *InMemoryMembershipStore
	CreditRepo     *InMemoryCreditStore
	PromoCodeRepo  *InMemoryPromoCodeStore
	DrawRepo       *InMemoryDrawStore
	RenewalRepo    *InMemoryRenewalStore
}

// BaseServiceSuite provides common functionality for service test suites
type BaseServiceSuite struct {
	suite.Suite
	ctx     context.Context
	cfg     *config.Configuration
	logger  *logger.Logger
	stores  Stores
	cache   cache.Cache
	idemGen *idempotency.Generator
	gateway *MockPaymentGateway
}

// SetupSuite initializes shared resources
func (s *BaseServiceSuite) SetupSuite() {
	s.cfg = &config.Configuration{
		Deployment: config.DeploymentConfig{Mode: types.ModeLocal},
		Server:     config.ServerConfig{Address: ":0"},
		Logging:    config.LoggingConfig{Level: types.LogLevelDebug},
		Billing: config.BillingConfig{
			PeriodDays:        30,
			PauseWindowDays:   30,
			RenewalMaxRetries: 3,
			Currency:          "usd",
		},
	}

	log, err := logger.NewLogger(s.cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.logger = log
	s.idemGen = idempotency.NewGenerator()
}

// SetupTest prepares fresh stores for each test
func (s *BaseServiceSuite) SetupTest() {
	s.ctx = SetupContext()
	s.stores = Stores{
		UserRepo:       NewInMemoryUserStore(),
		PlanRepo:       NewInMemoryPlanStore(),
		BoostPackRepo:  NewInMemoryBoostPackStore(),
		MembershipRepo: NewInMemoryMembershipStore(),
		CreditRepo:     NewInMemoryCreditStore(),
		PromoCodeRepo:  NewInMemoryPromoCodeStore(),
		DrawRepo:       NewInMemoryDrawStore(),
		RenewalRepo:    NewInMemoryRenewalStore(),
	}
	s.cache = cache.NewInMemoryCache()
	s.gateway = NewMockPaymentGateway()
}

// TearDownTest cleans up test data after each test
func (s *BaseServiceSuite) TearDownTest() {
	s.stores.UserRepo.Clear()
	s.stores.PlanRepo.Clear()
	s.stores.BoostPackRepo.Clear()
	s.stores.MembershipRepo.Clear()
	s.stores.CreditRepo.Clear()
	s.stores.PromoCodeRepo.Clear()
	s.stores.DrawRepo.Clear()
	s.stores.RenewalRepo.Clear()
	s.gateway.Clear()
}

// GetContext returns the test context
func (s *BaseServiceSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the test logger
func (s *BaseServiceSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetStores returns the in-memory stores
func (s *BaseServiceSuite) GetStores() Stores {
	return s.stores
}

// GetCache returns the test cache
func (s *BaseServiceSuite) GetCache() cache.Cache {
	return s.cache
}

// GetIdempotencyGenerator returns the idempotency key generator
func (s *BaseServiceSuite) GetIdempotencyGenerator() *idempotency.Generator {
	return s.idemGen
}

// GetPaymentGateway returns the mock payment gateway
func (s *BaseServiceSuite) GetPaymentGateway() *MockPaymentGateway {
	return s.gateway
}
