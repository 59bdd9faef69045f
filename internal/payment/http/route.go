package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, payerMiddleware gin.HandlerFunc) {
	group := g.Group("/payments")
	group.Use(authMiddleware, payerMiddleware)
	{
		group.POST("/initialize/:reservationId", h.Initialize)
		group.GET("/verify/:reference", h.Verify)
	}
}
