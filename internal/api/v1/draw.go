package v1

import (
	"net/http"

	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/service"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/gin-gonic/gin"
)

type DrawHandler struct {
	service service.DrawEntryService
	log     *logger.Logger
}

func NewDrawHandler(service service.DrawEntryService, log *logger.Logger) *DrawHandler {
	return &DrawHandler{service: service, log: log}
}

// @Summary List draws
// @Tags Draws
// @Produce json
// @Success 200 {array} dto.DrawResponse
// @Router /draws [get]
func (h *DrawHandler) ListDraws(c *gin.Context) {
	resp, err := h.service.ListDraws(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get a draw
// @Tags Draws
// @Produce json
// @Param id path string true "Draw ID"
// @Success 200 {object} dto.DrawResponse
// @Router /draws/{id} [get]
func (h *DrawHandler) GetDraw(c *gin.Context) {
	resp, err := h.service.GetDraw(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Enter a draw
// @Description Idempotent entry: replays with the same Idempotency-Key return the original entry
// @Tags Draws
// @Produce json
// @Param id path string true "Draw ID"
// @Param Idempotency-Key header string false "Idempotency key"
// @Success 201 {object} dto.DrawEntryResponse
// @Router /draws/{id}/enter [post]
func (h *DrawHandler) EnterDraw(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.TryEnter(ctx,
		types.GetUserID(ctx),
		c.Param("id"),
		c.GetHeader(types.HeaderIdempotencyKey),
	)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary List my draw entries
// @Tags Draws
// @Produce json
// @Success 200 {array} dto.DrawEntryResponse
// @Router /entries [get]
func (h *DrawHandler) ListEntries(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.ListEntries(ctx, types.GetUserID(ctx))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
