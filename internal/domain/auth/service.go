package auth

import (
	"context"
)

type AuthService interface {
	LoginWithLiff(ctx context.Context, req LiffLoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
}
