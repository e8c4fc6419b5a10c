package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/api"
	v1 "github.com/Unicash-organization/unicash-entitlement/internal/api/v1"
	"github.com/Unicash-organization/unicash-entitlement/internal/cache"
	"github.com/Unicash-organization/unicash-entitlement/internal/config"
	"github.com/Unicash-organization/unicash-entitlement/internal/idempotency"
	"github.com/Unicash-organization/unicash-entitlement/internal/integration/stripe"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/payment"
	"github.com/Unicash-organization/unicash-entitlement/internal/postgres"
	"github.com/Unicash-organization/unicash-entitlement/internal/repository"
	"github.com/Unicash-organization/unicash-entitlement/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Unicash Entitlement API
// @version 1.0
// @description Membership, credit, and draw entitlement service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			provideCache,
			postgres.NewDB,
			repository.New,
			idempotency.NewGenerator,
			stripe.NewClient,
			provideGateway,
			provideServiceParams,

			service.NewCatalogService,
			service.NewCheckoutService,
			service.NewMembershipService,
			service.NewCreditLedgerService,
			service.NewPromoCodeService,
			service.NewDrawEntryService,
			service.NewRenewalService,
			service.NewPaymentEventService,

			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer, startSweeps),
	)
	app.Run()
}

func provideCache() cache.Cache {
	return cache.NewInMemoryCache()
}

func provideGateway(client *stripe.Client, log *logger.Logger) payment.Gateway {
	return stripe.NewGateway(client, log)
}

func provideServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	c cache.Cache,
	gen *idempotency.Generator,
	gateway payment.Gateway,
	repos *repository.Repositories,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:               log,
		Config:               cfg,
		Cache:                c,
		IdempotencyGenerator: gen,
		PaymentGateway:       gateway,
		UserRepo:             repos.User,
		PlanRepo:             repos.Plan,
		BoostPackRepo:        repos.BoostPack,
		MembershipRepo:       repos.Membership,
		CreditRepo:           repos.Credit,
		PromoCodeRepo:        repos.PromoCode,
		DrawRepo:             repos.Draw,
		RenewalRepo:          repos.Renewal,
	}
}

func provideHandlers(
	log *logger.Logger,
	catalogService service.CatalogService,
	checkoutService service.CheckoutService,
	membershipService service.MembershipService,
	creditService service.CreditLedgerService,
	promoCodeService service.PromoCodeService,
	drawService service.DrawEntryService,
	paymentEventService service.PaymentEventService,
) *api.Handlers {
	return &api.Handlers{
		Health:     v1.NewHealthHandler(),
		Catalog:    v1.NewCatalogHandler(catalogService, log),
		Checkout:   v1.NewCheckoutHandler(checkoutService, log),
		Membership: v1.NewMembershipHandler(membershipService, log),
		Credit:     v1.NewCreditHandler(creditService, log),
		PromoCode:  v1.NewPromoCodeHandler(promoCodeService, log),
		Draw:       v1.NewDrawHandler(drawService, log),
		Webhook:    v1.NewWebhookHandler(paymentEventService, log),
	}
}

func provideRouter(handlers *api.Handlers, cfg *config.Configuration) *gin.Engine {
	return api.NewRouter(handlers, cfg)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := postgres.Migrate(db); err != nil {
				return err
			}
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return srv.Shutdown(ctx)
		},
	})
}

// startSweeps runs the renewal and pause-expiry sweeps on a fixed interval
func startSweeps(
	lc fx.Lifecycle,
	renewalService service.RenewalService,
	log *logger.Logger,
) {
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(time.Hour)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						sweepCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
						if _, err := renewalService.ProcessDueRenewals(sweepCtx); err != nil {
							log.Errorw("renewal sweep failed", "error", err)
						}
						if _, err := renewalService.ExpirePauses(sweepCtx); err != nil {
							log.Errorw("pause expiry sweep failed", "error", err)
						}
						cancel()
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
}
