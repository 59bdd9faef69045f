package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, frontDeskMiddleware gin.HandlerFunc) {
	group := g.Group("/notifications")
	group.Use(authMiddleware, frontDeskMiddleware)
	{
		group.POST("/check-in/:reservationId", h.CheckInReminder)
		group.POST("/check-out/:reservationId", h.CheckOutReminder)
	}
}
