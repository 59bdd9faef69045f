package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-ops-backend/internal/housekeeping"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/response"
)

type Handler struct {
	service housekeeping.Service
}

func NewHandler(service housekeeping.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), req.Input())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewTaskResponse(task))
}

func (h *Handler) List(c *gin.Context) {
	var req ListTasksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	tasks, total, err := h.service.ListTasks(c.Request.Context(), housekeeping.ListQuery{
		Status:          req.Status,
		RoomID:          req.RoomID,
		AssignedStaffID: req.AssignedStaffID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Page:            req.Page,
		Limit:           req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = NewTaskResponse(t)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

func (h *Handler) Update(c *gin.Context) {
	var uri ByTaskIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}
	if req.Empty() {
		response.BadRequest(c, "invalid request", errors.New("no fields to update"))
		return
	}

	task, err := h.service.UpdateTask(c.Request.Context(), uri.TaskID, housekeeping.UpdateInput{
		TaskType:        req.TaskType,
		Status:          req.Status,
		AssignedStaffID: req.AssignedStaffID,
		DueDate:         req.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewTaskResponse(task))
}
