package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-ops-backend/internal/availability"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Rooms lists rooms free for the whole requested window.
func (h *Handler) Rooms(c *gin.Context) {
	var req RoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	res, err := h.service.ListAvailableRooms(c.Request.Context(), availability.Query{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		RoomType:  req.RoomType,
		RoomID:    req.RoomID,
		Status:    req.Status,
		Page:      req.Page,
		Limit:     req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomsResponse(res))
}

func (h *Handler) Summary(c *gin.Context) {
	var req RangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	res, err := h.service.GetSummary(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSummaryResponse(res))
}

func (h *Handler) RoomDays(c *gin.Context) {
	var req RoomDaysRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	res, err := h.service.GetRoomDays(c.Request.Context(), req.RoomID, req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomDaysResponse(res))
}

func (h *Handler) SingleDate(c *gin.Context) {
	var req SingleDateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	res, err := h.service.GetSingleDate(c.Request.Context(), req.Date, req.RoomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSingleDateResponse(res))
}
