package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room routes.
// readMiddleware guards listing; writeMiddleware guards manual status overrides.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, readMiddleware, writeMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")
	group.Use(authMiddleware)
	{
		group.GET("", readMiddleware, h.List)
		group.GET("/:id", readMiddleware, h.Get)
		group.PATCH("/:id/status", writeMiddleware, h.UpdateStatus)
	}
}
