package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hotel-ops-backend/internal/frontdesk"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CheckIn(ctx context.Context, id string) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*reservation.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) CheckOut(ctx context.Context, id string) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*reservation.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

const reservationID = "7d1f2c6e-3b1a-4f55-9a0e-2f3c4d5e6f70"

func setupRouter(svc frontdesk.Service) *gin.Engine {
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

func TestCheckIn(t *testing.T) {
	svc := new(mockService)
	svc.On("CheckIn", mock.Anything, reservationID).Return(&reservation.Reservation{
		ID:           reservationID,
		Status:       reservation.StatusCheckedIn,
		CheckInDate:  time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC),
	}, nil)

	w := post(setupRouter(svc), "/v1/check-in/"+reservationID)
	require.Equal(t, http.StatusOK, w.Code)

	var body StayResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Check-in successful", body.Message)
	assert.Equal(t, "checked_in", body.Reservation.Status)
	assert.Equal(t, "2025-07-10", body.Reservation.CheckInDate)
	svc.AssertExpectations(t)
}

func TestTransitionErrors(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		method   string
		err      error
		wantCode int
	}{
		{"no-show", "/v1/check-in/" + reservationID, "CheckIn", frontdesk.ErrNoShow, http.StatusConflict},
		{"unpaid", "/v1/check-in/" + reservationID, "CheckIn", frontdesk.ErrNotPaid, http.StatusBadRequest},
		{"unknown reservation", "/v1/check-out/" + reservationID, "CheckOut", reservation.ErrNotFound, http.StatusNotFound},
		{"wrong day", "/v1/check-out/" + reservationID, "CheckOut", frontdesk.ErrNotCheckOutDay, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On(tt.method, mock.Anything, reservationID).Return(nil, tt.err)

			w := post(setupRouter(svc), tt.url)
			assert.Equal(t, tt.wantCode, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestTransitionRejectsBadID(t *testing.T) {
	w := post(setupRouter(new(mockService)), "/v1/check-out/42")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
