package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/handler"
	"github.com/skillswap/skillswap/internal/middleware"
)

// Handlers every handler served by the view surface
type Handlers struct {
	Auth        *handler.AuthHandler
	Navigation  *handler.NavigationHandler
	Dashboard   *handler.DashboardHandler
	Chat        *handler.ChatHandler
	Profile     *handler.ProfileHandler
	Description *handler.DescriptionHandler
	WS          *handler.WSHandler

	// DescriptionLimit optional middleware guarding text generation
	DescriptionLimit gin.HandlerFunc
}

// Setup configures all API routes. router must already carry the Session middleware.
func Setup(router *gin.Engine, h Handlers) {
	api := router.Group("/api")

	// State and navigation
	api.GET("/state", h.Navigation.GetState)
	api.POST("/navigate", h.Navigation.Navigate)
	api.POST("/navigate/home", h.Navigation.Home)
	api.POST("/navigate/dashboard", h.Navigation.Dashboard)
	api.POST("/navigate/relevant-chat", h.Navigation.RelevantChat)

	// Authentication
	api.POST("/registration", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.POST("/logout", h.Auth.Logout)

	// Dashboard
	api.GET("/services", h.Dashboard.ListServices)
	api.PUT("/filters", h.Dashboard.SetFilters)
	api.GET("/categories", h.Dashboard.Categories)
	describe := []gin.HandlerFunc{h.Description.Generate}
	if h.DescriptionLimit != nil {
		describe = append([]gin.HandlerFunc{h.DescriptionLimit}, describe...)
	}
	api.POST("/description", describe...)

	// Contact and chat
	api.POST("/contact", h.Chat.StartContact)
	api.POST("/conversations", h.Chat.StartConversation)
	api.GET("/chat", h.Chat.GetChat)
	api.POST("/chat/messages", h.Chat.SendMessage)

	chat := api.Group("/chat", middleware.RequireLogin())
	chat.POST("/audio", h.Chat.UploadAudio)
	chat.POST("/recording", h.Chat.StartRecording)
	chat.POST("/recording/chunks", h.Chat.PushChunk)
	chat.POST("/recording/stop", h.Chat.StopRecording)
	chat.DELETE("/recording", h.Chat.CancelRecording)

	// Profiles
	api.POST("/profile/view", h.Navigation.ViewProfile)
	api.GET("/profile", h.Profile.GetProfile)
	api.PUT("/profile", middleware.RequireLogin(), h.Profile.UpdateProfile)

	router.GET("/ws", h.WS.Connect)
}
