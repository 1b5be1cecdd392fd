package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/middleware"
	"github.com/skillswap/skillswap/internal/service"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	store             *service.Store
	minPasswordLength int
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(store *service.Store, minPasswordLength int) *AuthHandler {
	return &AuthHandler{store: store, minPasswordLength: minPasswordLength}
}

// Register handles POST /api/registration
func (h *AuthHandler) Register(c *gin.Context) {
	var form domain.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		bindError(c, err)
		return
	}

	outcome, err := h.store.Dispatch(service.RegisterUser{Form: form})
	if err != nil {
		respondError(c, err, h.minPasswordLength)
		return
	}
	respondState(c, h.store, outcome, "auth.register_success")
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, middleware.Translate(c, "auth.email_required"), err)
		return
	}
	dispatch(c, h.store, service.Login{Email: req.Email, Password: req.Password})
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	dispatch(c, h.store, service.Logout{}, "auth.logout_success")
}
