package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeshua-high/school-site-api/internal/service"
)

func testAuthService() *service.AuthService {
	return service.NewAuthService(service.AuthConfig{
		Password:    "pw",
		TokenSecret: "test-secret",
		TokenTTL:    time.Hour,
	}, nil)
}

func guardedRouter(auth *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/news", Session(auth, "admin_token"), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	router.GET("/admin", AdminPage(auth, "admin_token", "/login", false), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/admin-secure", AdminPage(auth, "admin_token", "/login", true), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestSessionRejectsMissingCookie(t *testing.T) {
	router := guardedRouter(testAuthService())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/news", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	auth := testAuthService()
	router := guardedRouter(auth)

	token, err := auth.IssueToken(time.Now())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/news", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: token + "x"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAllowsValidCookie(t *testing.T) {
	auth := testAuthService()
	router := guardedRouter(auth)

	token, err := auth.IssueToken(time.Now())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/news", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: token})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdminPageRedirectsToLogin(t *testing.T) {
	auth := testAuthService()
	router := guardedRouter(auth)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAdminPageClearsStaleCookie(t *testing.T) {
	auth := testAuthService()
	router := guardedRouter(auth)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "stale"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
	assert.False(t, cookies[0].Secure)
}

func TestAdminPageClearsStaleCookieWithSecureFlag(t *testing.T) {
	auth := testAuthService()
	router := guardedRouter(auth)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-secure", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "stale"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestAdminPageAllowsValidSession(t *testing.T) {
	auth := testAuthService()
	router := guardedRouter(auth)

	token, err := auth.IssueToken(time.Now())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: token})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
