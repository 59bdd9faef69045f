package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/config")
	group.Use(authMiddleware, adminMiddleware)
	{
		group.POST("/logo", h.UploadLogo)
		group.PUT("/:key", h.Set)
	}
}
