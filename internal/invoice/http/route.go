package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, readerMiddleware, generatorMiddleware, reportMiddleware gin.HandlerFunc) {
	group := g.Group("/invoices")
	group.Use(authMiddleware)
	{
		group.GET("/:invoiceId", readerMiddleware, h.GetPDF)
		group.POST("/generate/invoice", generatorMiddleware, h.GenerateInvoice)
		group.POST("/generate/report", reportMiddleware, h.GenerateReport)
	}
}
