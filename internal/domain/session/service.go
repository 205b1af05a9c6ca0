package session

import (
	"context"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/member"
)

type BootstrapService interface {
	// Bootstrap runs the sign-in sequence for user. The returned state is
	// always non-nil; on error its phase is PhaseFailed.
	Bootstrap(ctx context.Context, user member.LineUser) (*AppState, error)
}
