package conversations

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the conversations module. authn is
// the access-token middleware guarding every route in the group.
func RegisterRoutes(g *gin.RouterGroup, ctrl *Controller, authn gin.HandlerFunc) {
	group := g.Group("/conversations", authn)

	group.POST("", ctrl.CreateConversation)       // Register a new learning session
	group.GET("", ctrl.ListConversations)         // List the caller's conversations
	group.GET("/:id", ctrl.GetConversation)       // Get one conversation with its chat log
	group.DELETE("/:id", ctrl.DeleteConversation) // Delete a conversation
	group.POST("/ask", ctrl.Ask)                  // Ask a question about a video
}
