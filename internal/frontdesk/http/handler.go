package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-ops-backend/internal/frontdesk"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/hotel-ops-backend/internal/reservation/http"
)

type StayResponse struct {
	Message     string                              `json:"message"`
	Reservation reservationHttp.ReservationResponse `json:"reservation"`
}

type Handler struct {
	service frontdesk.Service
}

func NewHandler(service frontdesk.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.transition(c, h.service.CheckIn, "Check-in successful")
}

func (h *Handler) CheckOut(c *gin.Context) {
	h.transition(c, h.service.CheckOut, "Check-out successful")
}

func (h *Handler) transition(c *gin.Context, apply func(context.Context, string) (*reservation.Reservation, error), message string) {
	var req request.ByReservationIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	res, err := apply(c.Request.Context(), req.ReservationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, StayResponse{Message: message, Reservation: reservationHttp.NewResponse(res)})
}
