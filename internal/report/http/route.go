package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, financeMiddleware gin.HandlerFunc) {
	group := g.Group("/reports")
	group.Use(authMiddleware, financeMiddleware)
	{
		group.GET("/revenue", h.Revenue)
		group.GET("/payment-status", h.PaymentStatus)
		group.GET("/booking-financials", h.BookingFinancials)
		group.GET("/refunds", h.Refunds)
	}
}
