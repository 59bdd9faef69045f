package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/hotel-ops-backend/internal/user"
)

type stubUserService struct {
	user.Service
	users map[string]*user.User
}

func (s stubUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := stubUserService{users: map[string]*user.User{
		"manager":  {ID: "manager", Role: user.RoleManager, IsActive: true},
		"guest":    {ID: "guest", Role: user.RoleCustomer, IsActive: true},
		"disabled": {ID: "disabled", Role: user.RoleManager, IsActive: false},
	}}

	tests := []struct {
		name     string
		userID   string
		wantCode int
	}{
		{"allowed role", "manager", http.StatusOK},
		{"other role", "guest", http.StatusForbidden},
		{"inactive", "disabled", http.StatusForbidden},
		{"unknown user", "ghost", http.StatusUnauthorized},
		{"no identity", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) {
				if tt.userID != "" {
					c.Set("userID", tt.userID)
				}
				c.Next()
			}, RequireRoles(svc, user.RoleSuperAdmin, user.RoleManager), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
