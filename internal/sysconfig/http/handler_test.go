package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockService) Set(ctx context.Context, key, value string) (*sysconfig.Entry, error) {
	args := m.Called(ctx, key, value)
	res, _ := args.Get(0).(*sysconfig.Entry)
	return res, args.Error(1)
}

func (m *mockService) LoadAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockService) UploadLogo(ctx context.Context, content io.Reader) (*sysconfig.Entry, error) {
	args := m.Called(ctx, content)
	res, _ := args.Get(0).(*sysconfig.Entry)
	return res, args.Error(1)
}

func setupRouter(svc sysconfig.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), pass, pass)
	return r
}

func TestSetHandler(t *testing.T) {
	svc := new(mockService)
	svc.On("Set", mock.Anything, "hotel_name", "Seaside Inn").
		Return(&sysconfig.Entry{Key: "HOTEL_NAME", Value: "Seaside Inn", UpdatedAt: time.Now()}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/v1/config/hotel_name", strings.NewReader(`{"value":"Seaside Inn"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key":"HOTEL_NAME"`)
	svc.AssertExpectations(t)
}

func multipartLogo(t *testing.T, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="logo"; filename="logo.png"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestUploadLogoHandler(t *testing.T) {
	svc := new(mockService)
	svc.On("UploadLogo", mock.Anything, mock.Anything).
		Return(&sysconfig.Entry{Key: "HOTEL_LOGO_URL", Value: "/files/branding/hotel-logo.png"}, nil)

	body, ct := multipartLogo(t, "image/png")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/config/logo", body)
	req.Header.Set("Content-Type", ct)
	setupRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hotel-logo.png")
}

func TestUploadLogoHandlerRejects(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		svc := new(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/config/logo", nil)
		setupRouter(svc).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unsupported type", func(t *testing.T) {
		svc := new(mockService)
		body, ct := multipartLogo(t, "application/pdf")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/config/logo", body)
		req.Header.Set("Content-Type", ct)
		setupRouter(svc).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "UploadLogo", mock.Anything, mock.Anything)
	})
}
