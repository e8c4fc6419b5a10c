package middleware

import (
	"context"

	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/gin-gonic/gin"
)

// UserContextMiddleware propagates the authenticated user id resolved by the
// upstream API gateway. Requests without one proceed as guests; endpoints
// that require authentication use RequireUser.
func UserContextMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetHeader(types.HeaderUserID)
	if userID != "" {
		ctx = types.SetUserID(ctx, userID)
		ctx = context.WithValue(ctx, types.CtxIsGuest, false)
	} else {
		ctx = context.WithValue(ctx, types.CtxIsGuest, true)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// RequireUser rejects guest requests
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if types.IsGuest(c.Request.Context()) {
			c.Error(ierr.NewError("authentication required").
				WithHint("Sign in to continue").
				Mark(ierr.ErrPermissionDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}
