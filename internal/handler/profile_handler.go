package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/middleware"
	"github.com/skillswap/skillswap/internal/service"
)

// ProfileHandler handles member profiles
type ProfileHandler struct {
	store *service.Store
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(store *service.Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// UpdateProfileRequest profile edit; Image is a data URI replacing the current picture
type UpdateProfileRequest struct {
	domain.ProfilePatch
	UserID string `json:"user_id"`
	Image  string `json:"image"`
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	st := h.store.Snapshot()
	if st.Page != domain.PageUserProfile {
		respondError(c, common.ErrNotFound)
		return
	}
	user, ok := st.FindUser(st.ViewingUserProfileID)
	if !ok {
		respondError(c, common.ErrNotFound)
		return
	}

	view := ProfileView{
		User:     newUserView(user),
		Services: make([]domain.Service, 0),
		IsOwn:    st.CurrentUser != nil && st.CurrentUser.ID == user.ID,
	}
	for _, svc := range st.Services {
		if svc.UserID == user.ID {
			view.Services = append(view.Services, svc)
		}
	}
	common.SuccessResponse(c, view, &common.Meta{Total: len(view.Services)})
}

// UpdateProfile handles PUT /api/profile. Members may only edit their own profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	current := middleware.GetUserID(c)
	if req.UserID != "" && req.UserID != current {
		common.ErrorResponse(c, http.StatusForbidden, middleware.Translate(c, "profile.own_only"), common.ErrForbidden)
		return
	}

	dispatch(c, h.store, service.UpdateProfile{
		UserID:   current,
		Patch:    &req.ProfilePatch,
		NewImage: req.Image,
	}, "profile.updated")
}
