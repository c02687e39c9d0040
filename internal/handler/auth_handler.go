package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeshua-high/school-site-api/internal/service"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
	"github.com/yeshua-high/school-site-api/pkg/response"
)

// CookieConfig controls the session cookie the login endpoint sets.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler wires the shared-credential login to HTTP routes.
type AuthHandler struct {
	auth   *service.AuthService
	cookie CookieConfig
}

// NewAuthHandler constructs a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookie CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "admin_token"
	}
	return &AuthHandler{auth: auth, cookie: cookie}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login godoc
// @Summary Authenticate with the shared admin password
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	if err := h.auth.VerifyPassword(req.Password); err != nil {
		response.Error(c, err)
		return
	}
	token, err := h.auth.IssueToken(time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.auth.TokenTTL().Seconds()), "/", "", h.cookie.Secure, true)
	response.JSON(c, http.StatusOK, gin.H{"authenticated": true})
}

// Logout godoc
// @Summary Clear the admin session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.JSON(c, http.StatusOK, gin.H{"authenticated": false})
}

// Me godoc
// @Summary Report the current session state
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := sessionFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"role":      claims.Role,
		"expiresAt": claims.ExpiresAt,
	})
}
