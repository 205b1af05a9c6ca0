package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func TestLoginWithLiff(t *testing.T) {
	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	svc := NewAuthService(jwtService)

	resp, err := svc.LoginWithLiff(context.Background(), auth.LiffLoginRequest{UserID: "U1", DisplayName: "chai"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	name, _ := token.Get("display_name")
	assert.Equal(t, "chai", name)
}

func TestLoginWithLiff_MissingUser(t *testing.T) {
	svc := NewAuthService(jwt.NewJWTService(testSecret, testAccessExp))

	_, err := svc.LoginWithLiff(context.Background(), auth.LiffLoginRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestLogout(t *testing.T) {
	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	svc := NewAuthService(jwtService)

	require.NoError(t, svc.Logout(context.Background(), "tok"))
	assert.True(t, jwtService.IsTokenRevoked("tok"))

	assert.ErrorIs(t, svc.Logout(context.Background(), ""), auth.ErrInvalidToken)
}
