package transcribe

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the transcribe module
func RegisterRoutes(g *gin.RouterGroup, ctrl *Controller) {
	g.GET("/transcribe", ctrl.Transcribe)
}
