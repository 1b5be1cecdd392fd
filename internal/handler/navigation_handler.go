package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/middleware"
	"github.com/skillswap/skillswap/internal/service"
)

// NavigationHandler handles page transitions
type NavigationHandler struct {
	store *service.Store
}

// NewNavigationHandler creates a new NavigationHandler
func NewNavigationHandler(store *service.Store) *NavigationHandler {
	return &NavigationHandler{store: store}
}

// NavigateRequest target page by name
type NavigateRequest struct {
	Page string `json:"page" binding:"required"`
}

// ViewProfileRequest profile to open; empty means the current member
type ViewProfileRequest struct {
	UserID string `json:"user_id"`
}

// GetState handles GET /api/state
func (h *NavigationHandler) GetState(c *gin.Context) {
	respondState(c, h.store, nil)
}

// Navigate handles POST /api/navigate
func (h *NavigationHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	page, ok := domain.ParsePage(req.Page)
	if !ok {
		common.ErrorResponse(c, http.StatusBadRequest, middleware.Translate(c, "error.bad_request"), fmt.Errorf("unknown page %q", req.Page))
		return
	}
	dispatch(c, h.store, service.Navigate{Page: page})
}

// Home handles POST /api/navigate/home
func (h *NavigationHandler) Home(c *gin.Context) {
	dispatch(c, h.store, service.NavigateHome{})
}

// Dashboard handles POST /api/navigate/dashboard
func (h *NavigationHandler) Dashboard(c *gin.Context) {
	dispatch(c, h.store, service.Navigate{Page: domain.PageDashboard})
}

// RelevantChat handles POST /api/navigate/relevant-chat
func (h *NavigationHandler) RelevantChat(c *gin.Context) {
	dispatch(c, h.store, service.OpenRelevantChat{})
}

// ViewProfile handles POST /api/profile/view
func (h *NavigationHandler) ViewProfile(c *gin.Context) {
	var req ViewProfileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	dispatch(c, h.store, service.ViewProfile{UserID: req.UserID})
}
