package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/auth"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/logger"
)

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins(" https://a.example, ,https://b.example "))
	assert.Nil(t, splitOrigins(""))
}

func TestRouterProtectsModules(t *testing.T) {
	r := NewRouter(Config{
		Log:         zap.NewNop(),
		UserService: stubUserService{},
		JWTManager:  auth.NewJWTManager("test-secret", time.Minute),
	})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/rooms"},
		{http.MethodGet, "/v1/availability/rooms"},
		{http.MethodGet, "/v1/reports/revenue"},
		{http.MethodPut, "/v1/config/HOTEL_NAME"},
		{http.MethodPost, "/v1/check-in/7d1f2c6e-3b1a-4f55-9a0e-2f3c4d5e6f70"},
		{http.MethodGet, "/v1/housekeeping/tasks"},
		{http.MethodGet, "/v1/invoices/7d1f2c6e-3b1a-4f55-9a0e-2f3c4d5e6f70"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, p.path)
		assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader), p.path)
	}
}
