package request

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindQuery(t *testing.T, query string) (ListParams, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/items?"+query, nil)

	var p ListParams
	err := c.ShouldBindQuery(&p)
	return p, err
}

func TestListParamsBinding(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantErr   bool
		wantPage  int
		wantLimit int
	}{
		{"absent uses defaults", "", false, DefaultPage, DefaultLimit},
		{"explicit values", "page=3&limit=25", false, 3, 25},
		{"max limit", "limit=100", false, DefaultPage, 100},
		{"zero page", "page=0", true, 0, 0},
		{"zero limit", "limit=0", true, 0, 0},
		{"negative page", "page=-2", true, 0, 0},
		{"limit over max", "limit=101", true, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := bindQuery(t, tt.query)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestNormalizeAndOffset(t *testing.T) {
	p := ListParams{}
	p.Normalize()
	assert.Equal(t, ListParams{Page: DefaultPage, Limit: DefaultLimit}, p)
	assert.Equal(t, 0, p.Offset())

	p = ListParams{Page: 3, Limit: 500}
	p.Normalize()
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())
}
