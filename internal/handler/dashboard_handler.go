package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/service"
)

// DashboardHandler serves the service list and its filters
type DashboardHandler struct {
	store *service.Store
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(store *service.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// ServiceListResponse filtered dashboard
type ServiceListResponse struct {
	Services   []domain.Service      `json:"services"`
	Categories []string              `json:"categories"`
	Filters    domain.FilterCriteria `json:"filters"`
}

// ListServices handles GET /api/services
func (h *DashboardHandler) ListServices(c *gin.Context) {
	h.respondList(c, h.store.Snapshot())
}

// SetFilters handles PUT /api/filters
func (h *DashboardHandler) SetFilters(c *gin.Context) {
	var patch domain.FilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	if _, err := h.store.Dispatch(service.SetFilters{Patch: patch}); err != nil {
		respondError(c, err)
		return
	}
	h.respondList(c, h.store.Snapshot())
}

// Categories handles GET /api/categories
func (h *DashboardHandler) Categories(c *gin.Context) {
	common.SuccessResponse(c, domain.ServiceCategories, &common.Meta{Total: len(domain.ServiceCategories)})
}

func (h *DashboardHandler) respondList(c *gin.Context, st *domain.AppState) {
	viewerID := ""
	if st.CurrentUser != nil {
		viewerID = st.CurrentUser.ID
	}
	services := service.FilterServices(st.Services, st.Users, viewerID, st.Filters)
	common.SuccessResponse(c, ServiceListResponse{
		Services:   services,
		Categories: service.AvailableCategories(st.Services, viewerID),
		Filters:    st.Filters,
	}, &common.Meta{Total: len(services), Filtered: !st.Filters.IsZero()})
}
