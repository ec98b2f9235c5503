package jwt

import (
	"Billfold-Backend/domain"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	service := NewJWTService()

	token := service.GenerateTokenUser("user-1", domain.RoleUser)
	require.NotEmpty(t, token)

	userID, role, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, domain.RoleUser, role)
}

func TestRejectsForeignSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "other-secret")
	foreign := NewJWTService().GenerateTokenUser("user-1", domain.RoleUser)

	t.Setenv("JWT_SECRET", "test-secret")
	service := NewJWTService()

	_, _, err := service.GetUserIDByToken(foreign)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	service := NewJWTService()

	claims := jwtUserClaim{
		"user-1",
		domain.RoleUser,
		gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "BILLFOLD",
			IssuedAt:  gojwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = service.GetUserIDByToken(expired)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestRejectsGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	service := NewJWTService()

	_, _, err := service.GetUserIDByToken("not-a-token")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}
