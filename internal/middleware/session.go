package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeshua-high/school-site-api/internal/service"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
	"github.com/yeshua-high/school-site-api/pkg/response"
)

// ContextSessionKey is the gin context key storing validated session claims.
const ContextSessionKey = "adminSession"

// Session requires a valid admin session cookie. Reads on public content
// never pass through this; it guards mutations and the admin-only surfaces.
func Session(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(raw)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, claims)
		c.Next()
	}
}

// AdminPage guards the server-rendered admin console. Browsers get a
// redirect to the login page instead of a JSON error, and a stale cookie
// is cleared on the way out so the next login starts clean. The secure
// flag must match the one the login handler sets or the clear is ignored
// by browsers.
func AdminPage(authService *service.AuthService, cookieName, loginURL string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err == nil && raw != "" {
			if claims, err := authService.ValidateToken(raw); err == nil {
				c.Set(ContextSessionKey, claims)
				c.Next()
				return
			}
			c.SetCookie(cookieName, "", -1, "/", "", secure, true)
		}
		c.Redirect(http.StatusFound, loginURL)
		c.Abort()
	}
}
