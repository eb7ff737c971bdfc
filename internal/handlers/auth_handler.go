package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

// AuthHandler serves admin login and logout.
type AuthHandler struct {
	auth *services.AuthService
	log  *logrus.Logger
}

func NewAuthHandler(auth *services.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Login verifies the admin password and sets the session cookie.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "password")
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Password)
	if errors.Is(err, services.ErrInvalidPassword) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_CREDENTIALS", Message: "Sai mật khẩu"},
		})
		return
	}
	if errors.Is(err, services.ErrAuthDisabled) {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "AUTH_DISABLED", Message: err.Error()},
		})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	maxAge := int(h.auth.SessionTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)

	msg := "Đăng nhập thành công"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}

// Logout revokes the current session and clears the cookie.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil {
		h.auth.Logout(c.Request.Context(), token)
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	msg := "Đã đăng xuất"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}
