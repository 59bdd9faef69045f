package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig"
)

type Handler struct {
	service sysconfig.Service
}

func NewHandler(service sysconfig.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Set(c *gin.Context) {
	var uri ByKeyRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}
	var req SetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	entry, err := h.service.Set(c.Request.Context(), uri.Key, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewConfigResponse(entry))
}

// UploadLogo accepts a multipart image in the "logo" field.
func (h *Handler) UploadLogo(c *gin.Context) {
	header, err := c.FormFile(logoFormField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": logoFormField + " is required"})
		return
	}
	if header.Size > maxLogoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "logo exceeds 5 MB"})
		return
	}
	if !allowedLogoTypes[header.Header.Get("Content-Type")] {
		response.Error(c, sysconfig.ErrInvalidImage)
		return
	}

	src, err := header.Open()
	if err != nil {
		response.BadRequest(c, "failed to read upload", err)
		return
	}
	defer src.Close()

	entry, err := h.service.UploadLogo(c.Request.Context(), src)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewConfigResponse(entry))
}
