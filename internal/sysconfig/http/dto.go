package http

import (
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig"
)

const (
	logoFormField = "logo"
	maxLogoBytes  = 5 << 20
)

var allowedLogoTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

type ByKeyRequest struct {
	Key string `uri:"key" binding:"required,max=64"`
}

type SetConfigRequest struct {
	Value string `json:"value" binding:"max=4096"`
}

type ConfigResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewConfigResponse(e *sysconfig.Entry) ConfigResponse {
	return ConfigResponse{Key: e.Key, Value: e.Value, UpdatedAt: e.UpdatedAt}
}
