package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-service/internal/models"
)

// SessionCookieName carries the opaque admin session token.
const SessionCookieName = "admin_session"

// SessionValidator reports whether a session token is live.
type SessionValidator interface {
	Validate(ctx context.Context, token string) bool
}

// AdminAuth gates the admin API behind the session cookie.
func AdminAuth(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || !sessions.Validate(c.Request.Context(), token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "UNAUTHORIZED", Message: "Yêu cầu đăng nhập"},
			})
			return
		}
		c.Next()
	}
}
