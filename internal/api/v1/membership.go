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

type MembershipHandler struct {
	service service.MembershipService
	log     *logger.Logger
}

func NewMembershipHandler(service service.MembershipService, log *logger.Logger) *MembershipHandler {
	return &MembershipHandler{service: service, log: log}
}

// @Summary Subscribe to a plan
// @Description Create or reactivate a membership after a confirmed payment
// @Tags Membership
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Subscribe request"
// @Success 201 {object} dto.MembershipResponse
// @Router /membership/subscribe [post]
func (h *MembershipHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	ctx := c.Request.Context()
	if req.UserID == "" {
		req.UserID = types.GetUserID(ctx)
	}

	resp, err := h.service.Subscribe(ctx, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get my membership
// @Tags Membership
// @Produce json
// @Success 200 {object} dto.MembershipResponse
// @Router /membership/me [get]
func (h *MembershipHandler) GetMembership(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.GetByUser(ctx, types.GetUserID(ctx))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Schedule a plan change
// @Description Schedule an upgrade or downgrade; the swap happens at the next renewal
// @Tags Membership
// @Accept json
// @Produce json
// @Param request body dto.ChangePlanRequest true "Change plan request"
// @Success 200 {object} dto.MembershipResponse
// @Router /membership/me/change-plan [post]
func (h *MembershipHandler) ChangePlan(c *gin.Context) {
	var req dto.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.ChangePlan(ctx, types.GetUserID(ctx), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel a pending upgrade
// @Tags Membership
// @Produce json
// @Success 200 {object} dto.MembershipResponse
// @Router /membership/me/pending-upgrade [delete]
func (h *MembershipHandler) CancelPendingUpgrade(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.CancelPendingUpgrade(ctx, types.GetUserID(ctx))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Pause my membership
// @Tags Membership
// @Produce json
// @Success 200 {object} dto.MembershipResponse
// @Router /membership/me/pause [post]
func (h *MembershipHandler) Pause(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.Pause(ctx, types.GetUserID(ctx))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Resume my paused membership
// @Tags Membership
// @Produce json
// @Success 200 {object} dto.MembershipResponse
// @Router /membership/me/resume [post]
func (h *MembershipHandler) Resume(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.Resume(ctx, types.GetUserID(ctx))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel my membership
// @Description Cancel immediately; entitlements are revoked even mid-period
// @Tags Membership
// @Produce json
// @Success 200 {object} dto.MembershipResponse
// @Router /membership/me [delete]
func (h *MembershipHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.Cancel(ctx, types.GetUserID(ctx))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
