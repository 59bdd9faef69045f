package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-ops-backend/internal/auth"
	"github.com/nekogravitycat/hotel-ops-backend/internal/invoice"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/response"
)

type Handler struct {
	service invoice.Service
}

func NewHandler(service invoice.Service) *Handler {
	return &Handler{service: service}
}

// GetPDF streams the stored PDF as a download.
func (h *Handler) GetPDF(c *gin.Context) {
	var req ByInvoiceIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	doc, err := h.service.GetPDF(c.Request.Context(), req.InvoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

func (h *Handler) GenerateInvoice(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	inv, err := h.service.GenerateInvoice(c.Request.Context(), req.ReservationID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, GeneratedResponse{Message: "Invoice PDF generated", InvoiceID: inv.ID, FileName: inv.FileName})
}

func (h *Handler) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	inv, err := h.service.GenerateReport(c.Request.Context(), invoice.Type(req.Type), invoice.ReportFilters{
		Preset:      req.Preset,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		RoomType:    req.RoomType,
		Granularity: req.Granularity,
	}, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, GeneratedResponse{Message: "Report PDF generated", InvoiceID: inv.ID, FileName: inv.FileName})
}
