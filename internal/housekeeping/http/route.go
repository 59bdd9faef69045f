package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the task endpoints. Listing additionally admits readers such as accountants.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, managerMiddleware, readerMiddleware gin.HandlerFunc) {
	tasks := g.Group("/housekeeping/tasks")
	tasks.Use(authMiddleware)
	{
		tasks.POST("", managerMiddleware, h.Create)
		tasks.GET("", readerMiddleware, h.List)
		tasks.PATCH("/:taskId", managerMiddleware, h.Update)
	}
}
