package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nekogravitycat/hotel-ops-backend/internal/notification"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
)

type mockService struct {
	notification.Service
	mock.Mock
}

func (m *mockService) SendCheckInReminder(ctx context.Context, reservationID string) error {
	return m.Called(ctx, reservationID).Error(0)
}

func (m *mockService) SendCheckOutReminder(ctx context.Context, reservationID string) error {
	return m.Called(ctx, reservationID).Error(0)
}

const reservationID = "7d1f2c6e-3b1a-4f55-9a0e-2f3c4d5e6f70"

func setupRouter(svc notification.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), pass, pass)
	return r
}

func post(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, url, nil))
	return w
}

func TestReminderHandlers(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		method   string
		err      error
		wantCode int
	}{
		{"check-in sent", "/v1/notifications/check-in/" + reservationID, "SendCheckInReminder", nil, http.StatusOK},
		{"check-in outside window", "/v1/notifications/check-in/" + reservationID, "SendCheckInReminder", notification.ErrCheckInReminderWindow, http.StatusConflict},
		{"check-out sent", "/v1/notifications/check-out/" + reservationID, "SendCheckOutReminder", nil, http.StatusOK},
		{"check-out unknown reservation", "/v1/notifications/check-out/" + reservationID, "SendCheckOutReminder", reservation.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On(tt.method, mock.Anything, reservationID).Return(tt.err)

			w := post(setupRouter(svc), tt.url)
			assert.Equal(t, tt.wantCode, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestReminderHandlerRejectsBadID(t *testing.T) {
	svc := new(mockService)
	w := post(setupRouter(svc), "/v1/notifications/check-in/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
