package v1

import (
	"net/http"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/service"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service service.CheckoutService
	log     *logger.Logger
}

func NewCheckoutHandler(service service.CheckoutService, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: service, log: log}
}

// @Summary Resolve checkout scenario
// @Description Resolve what the buyer is purchasing and price it, re-validating any promo code
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body dto.ResolveCheckoutRequest true "Checkout request"
// @Success 200 {object} dto.CheckoutQuoteResponse
// @Router /checkout/resolve [post]
func (h *CheckoutHandler) ResolveCheckout(c *gin.Context) {
	var req dto.ResolveCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.ResolveScenario(ctx, types.GetUserID(ctx), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
