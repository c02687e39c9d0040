package service

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeshua-high/school-site-api/internal/models"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
)

// AuthConfig defines the shared admin credential and token parameters.
type AuthConfig struct {
	Password    string
	Hash        string
	TokenSecret string
	TokenTTL    time.Duration
}

// AuthService verifies the shared admin password and mints session tokens.
// There is no user table: the site has exactly one credential and every
// authenticated caller is the same admin. Failures are deliberately opaque
// so a probing client cannot tell a bad password from a stale token.
type AuthService struct {
	config AuthConfig
	logger *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(config AuthConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}
	return &AuthService{config: config, logger: logger}
}

// TokenTTL exposes the session lifetime so the cookie max-age can match the
// token expiry exactly.
func (s *AuthService) TokenTTL() time.Duration {
	return s.config.TokenTTL
}

// VerifyPassword checks the candidate against the configured credential.
// A hashed credential takes precedence over a plain one, and an unset
// credential fails closed rather than accepting everything.
func (s *AuthService) VerifyPassword(candidate string) error {
	if s.config.Hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.config.Hash), []byte(candidate)); err != nil {
			return appErrors.Clone(appErrors.ErrUnauthorized, "invalid credentials")
		}
		return nil
	}
	if s.config.Password == "" {
		s.logger.Warn("admin password not configured, rejecting login")
		return appErrors.Clone(appErrors.ErrUnauthorized, "invalid credentials")
	}
	if subtle.ConstantTimeCompare([]byte(s.config.Password), []byte(candidate)) != 1 {
		return appErrors.Clone(appErrors.ErrUnauthorized, "invalid credentials")
	}
	return nil
}

// IssueToken mints a signed session token for the admin role.
func (s *AuthService) IssueToken(now time.Time) (string, error) {
	claims := models.SessionClaims{
		Role: models.AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token. Every failure mode
// collapses into the same unauthorized error.
func (s *AuthService) ValidateToken(raw string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session")
	}
	if claims.Role != models.AdminRole {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session")
	}
	return claims, nil
}
