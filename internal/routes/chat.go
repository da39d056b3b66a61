package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/handlers"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/middleware"
)

func RegisterChatRoutes(r gin.IRouter) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.GET("/conversations", handlers.GetConversations)
		chat.POST("/conversations", handlers.CreateConversation)
		chat.PUT("/conversations/:id/status", handlers.ChangeStatus)
		chat.POST("/refresh", handlers.RefreshChat)
		chat.PUT("/filter", handlers.SetFilter)
		chat.PUT("/select", handlers.SelectConversation)
		chat.GET("/messages", handlers.GetMessages)
		chat.POST("/messages", handlers.SendMessage)
		chat.GET("/candidates", handlers.SearchCandidates)
	}
}
