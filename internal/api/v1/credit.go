package v1

import (
	"net/http"

	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/service"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	service service.CreditLedgerService
	log     *logger.Logger
}

func NewCreditHandler(service service.CreditLedgerService, log *logger.Logger) *CreditHandler {
	return &CreditHandler{service: service, log: log}
}

// @Summary Get my credit balance
// @Tags Credits
// @Produce json
// @Success 200 {object} dto.CreditBalanceResponse
// @Router /credits/balance [get]
func (h *CreditHandler) GetBalance(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.Balance(ctx, types.GetUserID(ctx))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List my credit ledger
// @Tags Credits
// @Produce json
// @Success 200 {array} dto.CreditLedgerEntryResponse
// @Router /credits/ledger [get]
func (h *CreditHandler) ListLedger(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.ListLedger(ctx, types.GetUserID(ctx))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
