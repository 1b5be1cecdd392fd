package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/middleware"
	"github.com/skillswap/skillswap/internal/service"
)

// respondState renders the state after outcome; noticeKeys are translated into meta notices
func respondState(c *gin.Context, store *service.Store, outcome *service.Outcome, noticeKeys ...string) {
	var meta *common.Meta
	if len(noticeKeys) > 0 {
		meta = &common.Meta{}
		for _, key := range noticeKeys {
			meta.Notices = append(meta.Notices, middleware.Translate(c, key))
		}
	}
	common.SuccessResponse(c, newStateView(store.Snapshot(), outcome), meta)
}

// dispatch applies a and renders the resulting state, or the error
func dispatch(c *gin.Context, store *service.Store, a service.Action, noticeKeys ...string) {
	outcome, err := store.Dispatch(a)
	if err != nil {
		respondError(c, err)
		return
	}
	respondState(c, store, outcome, noticeKeys...)
}
