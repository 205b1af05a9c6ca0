package attendance

import (
	"context"
	"io"
)

type AttendanceService interface {
	Timeline(ctx context.Context, userID string) (Timeline, error)
	CheckIn(ctx context.Context, userID string) (CheckInResponse, error)
	CheckOutToday(ctx context.Context, userID string) (CheckOutResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)
	// Leave
	RequestLeave(ctx context.Context, userID string, req LeaveRequest) (LeaveRow, error)
	LeaveHistory(ctx context.Context, userID string) ([]LeaveRow, error)
	UpcomingLeaves(ctx context.Context) ([]ScheduledLeave, error)
	// Export
	Export(ctx context.Context, userID string, w io.Writer) error
}
