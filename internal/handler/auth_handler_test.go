package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeshua-high/school-site-api/internal/service"
)

func authTestHandler(secure bool) *AuthHandler {
	auth := service.NewAuthService(service.AuthConfig{
		Password:    "letmein",
		TokenSecret: "test-secret",
		TokenTTL:    24 * time.Hour,
	}, nil)
	return NewAuthHandler(auth, CookieConfig{Name: "admin_token", Secure: secure})
}

func loginWith(t *testing.T, handler *AuthHandler, password string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string]string{"password": password})
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Login(c)
	return w
}

func TestAuthHandlerLoginSetsSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := authTestHandler(false)

	w := loginWith(t, handler, "letmein")
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "admin_token", cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestAuthHandlerLoginSecureCookieInProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := authTestHandler(true)

	w := loginWith(t, handler, "letmein")
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestAuthHandlerLoginRejectsWrongPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := authTestHandler(false)

	w := loginWith(t, handler, "guess")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandlerLogoutClearsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := authTestHandler(false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	handler.Logout(c)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}
