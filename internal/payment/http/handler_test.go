package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hotel-ops-backend/internal/payment"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Initialize(ctx context.Context, reservationID, userID string) (*payment.InitResult, error) {
	args := m.Called(ctx, reservationID, userID)
	if r := args.Get(0); r != nil {
		return r.(*payment.InitResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Verify(ctx context.Context, reference, userID string) (*payment.VerifyResult, error) {
	args := m.Called(ctx, reference, userID)
	if r := args.Get(0); r != nil {
		return r.(*payment.VerifyResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) GetByReference(ctx context.Context, reference string) (*payment.Payment, error) {
	args := m.Called(ctx, reference)
	if r := args.Get(0); r != nil {
		return r.(*payment.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

const reservationID = "7d1f2c6e-3b1a-4f55-9a0e-2f3c4d5e6f70"

func setupRouter(svc payment.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	withUser := func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Next()
	}
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), withUser, pass)
	return r
}

func serve(r *gin.Engine, method, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, url, nil))
	return w
}

func TestInitialize(t *testing.T) {
	svc := new(mockService)
	svc.On("Initialize", mock.Anything, reservationID, "user-1").Return(&payment.InitResult{
		AuthorizationURL: "https://checkout.paystack.com/abc",
		Reference:        "ref-1",
		Payment:          &payment.Payment{ID: "p-1", Reference: "ref-1", Amount: 250050, Status: payment.StatusPending},
	}, nil)

	w := serve(setupRouter(svc), http.MethodPost, "/v1/payments/initialize/"+reservationID)
	require.Equal(t, http.StatusCreated, w.Code)

	var body InitializeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://checkout.paystack.com/abc", body.AuthorizationURL)
	assert.InDelta(t, 2500.50, body.Payment.Amount, 0.001)
	svc.AssertExpectations(t)
}

func TestInitializeErrors(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		err      error
		wantCode int
	}{
		{"bad id", "/v1/payments/initialize/abc", nil, http.StatusBadRequest},
		{"already paid", "/v1/payments/initialize/" + reservationID, payment.ErrAlreadyPaid, http.StatusConflict},
		{"unknown reservation", "/v1/payments/initialize/" + reservationID, reservation.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.err != nil {
				svc.On("Initialize", mock.Anything, reservationID, "user-1").Return(nil, tt.err)
			}
			w := serve(setupRouter(svc), http.MethodPost, tt.url)
			assert.Equal(t, tt.wantCode, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestVerifyOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		result      *payment.VerifyResult
		wantMessage string
		wantRes     bool
	}{
		{
			"verified",
			&payment.VerifyResult{
				Outcome:     payment.OutcomeVerified,
				Payment:     &payment.Payment{Reference: "ref-1", Status: payment.StatusSuccess},
				Reservation: &reservation.Reservation{ID: reservationID, Status: reservation.StatusPaid},
			},
			"Payment verified successfully",
			true,
		},
		{
			"failed",
			&payment.VerifyResult{
				Outcome: payment.OutcomeFailed,
				Payment: &payment.Payment{Reference: "ref-1", Status: payment.StatusFailed},
			},
			"Payment failed",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Verify", mock.Anything, "ref-1", "user-1").Return(tt.result, nil)

			w := serve(setupRouter(svc), http.MethodGet, "/v1/payments/verify/ref-1")
			require.Equal(t, http.StatusOK, w.Code)

			var body VerifyResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantRes, body.Reservation != nil)
		})
	}
}

func TestVerifyUnknownReference(t *testing.T) {
	svc := new(mockService)
	svc.On("Verify", mock.Anything, "missing", "user-1").Return(nil, payment.ErrNotFound)

	w := serve(setupRouter(svc), http.MethodGet, "/v1/payments/verify/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
