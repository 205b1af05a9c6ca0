package member

import "context"

type MemberService interface {
	Signup(ctx context.Context, user LineUser, req SignupRequest) (Member, error)
	GetByUserID(ctx context.Context, userID string) (Member, error)
	History(ctx context.Context, userID string) ([]Bill, error)
}
