package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-ops-backend/internal/report"
)

type Handler struct {
	service report.Service
}

func NewHandler(service report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Revenue(c *gin.Context) {
	var req RevenueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	res, err := h.service.Revenue(c.Request.Context(), report.RevenueFilter{
		Filter:      req.Filter(),
		Status:      req.Status,
		RoomType:    req.RoomType,
		Granularity: req.Granularity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRevenueResponse(res))
}

func (h *Handler) PaymentStatus(c *gin.Context) {
	var req PaymentStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	res, err := h.service.PaymentStatus(c.Request.Context(), report.PaymentStatusFilter{
		Filter: req.Filter(),
		Status: req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPaymentStatusResponse(res))
}

func (h *Handler) BookingFinancials(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	res, err := h.service.BookingFinancials(c.Request.Context(), report.BookingFilter{
		Filter:        req.Filter(),
		ReservationID: req.ReservationID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingFinancialsResponse(res))
}

func (h *Handler) Refunds(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	res, err := h.service.Refunds(c.Request.Context(), req.Filter())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRefundResponse(res))
}
