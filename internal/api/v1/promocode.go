package v1

import (
	"net/http"

	"github.com/Unicash-organization/unicash-entitlement/internal/api/dto"
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/service"
	"github.com/gin-gonic/gin"
)

type PromoCodeHandler struct {
	service service.PromoCodeService
	log     *logger.Logger
}

func NewPromoCodeHandler(service service.PromoCodeService, log *logger.Logger) *PromoCodeHandler {
	return &PromoCodeHandler{service: service, log: log}
}

// @Summary Validate a promo code
// @Description Validate a code against a live order amount; must be re-run on every cart change
// @Tags PromoCodes
// @Accept json
// @Produce json
// @Param request body dto.ValidatePromoCodeRequest true "Validation request"
// @Success 200 {object} dto.PromoCodeValidationResponse
// @Router /promo-codes/validate [post]
func (h *PromoCodeHandler) ValidatePromoCode(c *gin.Context) {
	var req dto.ValidatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Validate(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
