package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeshua-high/school-site-api/internal/models"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
)

func TestAuthServiceVerifyPlainPassword(t *testing.T) {
	service := NewAuthService(AuthConfig{Password: "correct horse", TokenSecret: "secret"}, nil)

	require.NoError(t, service.VerifyPassword("correct horse"))

	err := service.VerifyPassword("wrong")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceVerifyHashedPasswordTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed secret"), bcrypt.MinCost)
	require.NoError(t, err)
	service := NewAuthService(AuthConfig{Password: "plain ignored", Hash: string(hash), TokenSecret: "secret"}, nil)

	require.NoError(t, service.VerifyPassword("hashed secret"))
	require.Error(t, service.VerifyPassword("plain ignored"))
}

func TestAuthServiceFailsClosedWithoutCredential(t *testing.T) {
	service := NewAuthService(AuthConfig{TokenSecret: "secret"}, nil)

	err := service.VerifyPassword("")
	require.Error(t, err)
	err = service.VerifyPassword("anything")
	require.Error(t, err)
}

func TestAuthServiceTokenRoundTrip(t *testing.T) {
	service := NewAuthService(AuthConfig{Password: "pw", TokenSecret: "secret", TokenTTL: time.Hour}, nil)

	token, err := service.IssueToken(time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.AdminRole, claims.Role)
}

func TestAuthServiceRejectsForeignAndExpiredTokens(t *testing.T) {
	service := NewAuthService(AuthConfig{Password: "pw", TokenSecret: "secret", TokenTTL: time.Hour}, nil)
	other := NewAuthService(AuthConfig{Password: "pw", TokenSecret: "different", TokenTTL: time.Hour}, nil)

	foreign, err := other.IssueToken(time.Now())
	require.NoError(t, err)
	_, err = service.ValidateToken(foreign)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	expired, err := service.IssueToken(time.Now().Add(-2 * time.Hour))
	require.NoError(t, err)
	_, err = service.ValidateToken(expired)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = service.ValidateToken("not-a-token")
	require.Error(t, err)
}
