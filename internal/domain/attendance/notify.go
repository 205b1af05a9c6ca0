package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/notification"
)

func nameOr(nickname, fallback string) string {
	if nickname != "" {
		return nickname
	}
	return fallback
}

func CheckInMessage(nickname, checkIn string) notification.Message {
	return notification.Message{
		Title:    "Employee Check-in",
		Text:     fmt.Sprintf("Check-in: %s at %s", nameOr(nickname, "Employee"), checkIn),
		Audience: notification.AudienceAdmin,
	}
}

func CheckOutMessage(nickname, checkOut, workHours string) notification.Message {
	return notification.Message{
		Title:    "Employee Check-out",
		Text:     fmt.Sprintf("Check-out: %s at %s (Work Hours: %s)", nameOr(nickname, "Employee"), checkOut, workHours),
		Audience: notification.AudienceAdmin,
	}
}

func LeaveMessage(nickname string, row LeaveRow) notification.Message {
	return notification.Message{
		Title: "Leave Request",
		Text: fmt.Sprintf("Leave Request: %s - %s (%s days)\nDate: %s\nReason: %s",
			nameOr(nickname, "Employee"), row.LeaveOption, row.Days, row.Date, row.Reason),
		Audience: notification.AudienceAdmin,
	}
}

// AppendedRowMessage inspects a raw row written through the append endpoint
// and returns the notification it calls for, if any. Check-in rows carry
// status checked_in; new leave rows carry approval FALSE.
func AppendedRowMessage(nickname string, cells []string) (notification.Message, bool) {
	get := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}

	if len(cells) <= attendanceColumns && Status(get(ColStatus)) == StatusCheckedIn {
		return CheckInMessage(nameOr(nickname, get(ColEmployeeID)), get(ColCheckIn)), true
	}
	if len(cells) == leaveColumns && !(LeaveRow{Approval: get(ColLeaveApproval)}).Approved() && get(ColLeaveApproval) != "" {
		row := LeaveRow{
			Date:        get(ColLeaveDate),
			LeaveOption: LeaveOption(get(ColLeaveOption)),
			Days:        get(ColLeaveDays),
			Reason:      get(ColLeaveReason),
		}
		return LeaveMessage(nickname, row), true
	}
	return notification.Message{}, false
}
