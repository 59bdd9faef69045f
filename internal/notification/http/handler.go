package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-ops-backend/internal/notification"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/response"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CheckInReminder(c *gin.Context) {
	var req request.ByReservationIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.SendCheckInReminder(c.Request.Context(), req.ReservationID); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Check-in reminder sent successfully"})
}

func (h *Handler) CheckOutReminder(c *gin.Context) {
	var req request.ByReservationIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.SendCheckOutReminder(c.Request.Context(), req.ReservationID); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Check-out reminder sent successfully"})
}
