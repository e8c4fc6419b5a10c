package v1

import (
	"net/http"

	"github.com/Unicash-organization/unicash-entitlement/internal/logger"
	"github.com/Unicash-organization/unicash-entitlement/internal/service"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, log: log}
}

// @Summary List membership plans
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.PlanResponse
// @Router /plans [get]
func (h *CatalogHandler) ListPlans(c *gin.Context) {
	resp, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get a membership plan
// @Tags Catalog
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Router /plans/{id} [get]
func (h *CatalogHandler) GetPlan(c *gin.Context) {
	resp, err := h.service.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List boost packs
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.BoostPackResponse
// @Router /boost-packs [get]
func (h *CatalogHandler) ListBoostPacks(c *gin.Context) {
	resp, err := h.service.ListBoostPacks(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get a boost pack
// @Tags Catalog
// @Produce json
// @Param id path string true "Boost pack ID"
// @Success 200 {object} dto.BoostPackResponse
// @Router /boost-packs/{id} [get]
func (h *CatalogHandler) GetBoostPack(c *gin.Context) {
	resp, err := h.service.GetBoostPack(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
