package http

import (
	"net/http"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/member"
	"github.com/go-chi/jwtauth/v5"
)

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

func lineUserFromContext(r *http.Request) member.LineUser {
	_, claims, _ := jwtauth.FromContext(r.Context())
	user := member.LineUser{}
	user.UserID, _ = claims["user_id"].(string)
	user.DisplayName, _ = claims["display_name"].(string)
	return user
}
