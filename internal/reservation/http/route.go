package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers reservation lookup routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/reservations")
	group.Use(authMiddleware, staffMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}
}
