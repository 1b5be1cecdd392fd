package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/service"
)

// DescriptionHandler drafts service descriptions
type DescriptionHandler struct {
	generator service.DescriptionGenerator
}

// NewDescriptionHandler creates a new DescriptionHandler
func NewDescriptionHandler(generator service.DescriptionGenerator) *DescriptionHandler {
	return &DescriptionHandler{generator: generator}
}

// DescriptionRequest keywords of the service and the member's profession
type DescriptionRequest struct {
	Keywords   string `json:"keywords" binding:"required"`
	Profession string `json:"profession"`
}

// Generate handles POST /api/description. Generation failures still answer 200
// with a fallback text the member can replace.
func (h *DescriptionHandler) Generate(c *gin.Context) {
	var req DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	text := h.generator.Generate(c.Request.Context(), req.Keywords, req.Profession)
	common.SuccessResponse(c, gin.H{"description": text}, nil)
}
