package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
)

const userIDKey = "userID"

// SnapshotSource exposes the committed application state
type SnapshotSource interface {
	Snapshot() *domain.AppState
}

// Session stores the id of the logged-in member in the gin context
func Session(store SnapshotSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u := store.Snapshot().CurrentUser; u != nil {
			c.Set(userIDKey, u.ID)
		}
		c.Next()
	}
}

// RequireLogin rejects requests made while nobody is logged in
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, Translate(c, "auth.unauthorized"), common.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts the logged-in member id from context
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return ""
	}
	if str, ok := userID.(string); ok {
		return str
	}
	return ""
}
