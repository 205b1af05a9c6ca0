package auth

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	jwtService jwt.Service
}

func NewAuthService(jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{jwtService: jwtService}
}

// LoginWithLiff implements auth.AuthService. The LINE user id is trusted as
// given; LIFF has already authenticated the user inside LINE.
func (a *AuthServiceImpl) LoginWithLiff(ctx context.Context, req auth.LiffLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(req.UserID, req.DisplayName)
	if err != nil {
		slog.Error("Failed to generate access token", "user_id", req.UserID, "error", err)
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.jwtService.RevokeToken(token)
	return nil
}
