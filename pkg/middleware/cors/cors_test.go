package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsRouter(allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(allowedOrigins))
	r.PATCH("/admissions/:id/review", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestPreflightAllowsPatch(t *testing.T) {
	r := corsRouter(nil)

	req := httptest.NewRequest(http.MethodOptions, "/admissions/5/review", nil)
	req.Header.Set("Origin", "http://admin.example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Equal(t, "http://admin.example.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestDisallowedOriginGetsNoAllowHeader(t *testing.T) {
	r := corsRouter([]string{"https://school.example.test"})

	req := httptest.NewRequest(http.MethodOptions, "/admissions/5/review", nil)
	req.Header.Set("Origin", "https://elsewhere.example.test")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
