package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/availability")
	group.Use(authMiddleware, staffMiddleware)
	{
		group.GET("/rooms", h.Rooms)
		group.GET("/summary", h.Summary)
		group.GET("/room-days", h.RoomDays)
		group.GET("/single-date", h.SingleDate)
	}
}
