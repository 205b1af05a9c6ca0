package auth

import "github.com/cmlabs-hris/liff-attendance-go/internal/pkg/validator"

// LiffLoginRequest carries the profile LINE returned to the mini-app.
type LiffLoginRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

func (r *LiffLoginRequest) Validate() error {
	var errs validator.ValidationErrors
	errs.Required("userId", r.UserID)
	return errs.Err()
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}
