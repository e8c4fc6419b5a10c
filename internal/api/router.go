package api

import (
	v1 "github.com/Unicash-organization/unicash-entitlement/internal/api/v1"
	"github.com/Unicash-organization/unicash-entitlement/internal/config"
	"github.com/Unicash-organization/unicash-entitlement/internal/rest/middleware"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every v1 handler wired into the router
type Handlers struct {
	Health     *v1.HealthHandler
	Catalog    *v1.CatalogHandler
	Checkout   *v1.CheckoutHandler
	Membership *v1.MembershipHandler
	Credit     *v1.CreditHandler
	PromoCode  *v1.PromoCodeHandler
	Draw       *v1.DrawHandler
	Webhook    *v1.WebhookHandler
}

// NewRouter assembles the gin engine with the shared middleware chain
func NewRouter(handlers *Handlers, cfg *config.Configuration) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.UserContextMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	root := router.Group("/v1")

	// Public catalog and checkout resolution (guest checkout is allowed for
	// new-membership purchases)
	public := root.Group("")
	{
		public.GET("/plans", handlers.Catalog.ListPlans)
		public.GET("/plans/:id", handlers.Catalog.GetPlan)
		public.GET("/boost-packs", handlers.Catalog.ListBoostPacks)
		public.GET("/boost-packs/:id", handlers.Catalog.GetBoostPack)
		public.GET("/draws", handlers.Draw.ListDraws)
		public.GET("/draws/:id", handlers.Draw.GetDraw)
		public.POST("/checkout/resolve", handlers.Checkout.ResolveCheckout)
		public.POST("/promo-codes/validate", handlers.PromoCode.ValidatePromoCode)
	}

	authed := root.Group("", middleware.RequireUser())
	{
		authed.POST("/membership/subscribe", handlers.Membership.Subscribe)
		authed.GET("/membership/me", handlers.Membership.GetMembership)
		authed.DELETE("/membership/me", handlers.Membership.Cancel)
		authed.POST("/membership/me/change-plan", handlers.Membership.ChangePlan)
		authed.DELETE("/membership/me/pending-upgrade", handlers.Membership.CancelPendingUpgrade)
		authed.POST("/membership/me/pause", handlers.Membership.Pause)
		authed.POST("/membership/me/resume", handlers.Membership.Resume)

		authed.GET("/credits/balance", handlers.Credit.GetBalance)
		authed.GET("/credits/ledger", handlers.Credit.ListLedger)

		authed.POST("/draws/:id/enter", handlers.Draw.EnterDraw)
		authed.GET("/entries", handlers.Draw.ListEntries)
	}

	// Provider webhooks authenticate via signature, not user context
	root.POST("/webhooks/stripe", handlers.Webhook.HandleStripeWebhook)

	return router
}
