package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, frontDeskMiddleware gin.HandlerFunc) {
	g.POST("/check-in/:reservationId", authMiddleware, frontDeskMiddleware, h.CheckIn)
	g.POST("/check-out/:reservationId", authMiddleware, frontDeskMiddleware, h.CheckOut)
}
