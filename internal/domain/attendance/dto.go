package attendance

import (
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/validator"
)

// CheckOutRequest is the body of the update-by-row checkout contract.
type CheckOutRequest struct {
	EmployeeID string `json:"employeeId"`
	// UserID is the key older mini-app builds send instead of employeeId.
	UserID    string `json:"userId,omitempty"`
	Date      string `json:"date"`
	CheckOut  string `json:"checkOut"`
	WorkHours string `json:"workHours"`
	SheetID   string `json:"sheetId"`
	Range     string `json:"range,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	if r.EmployeeID == "" {
		r.EmployeeID = r.UserID
	}
	if r.Range == "" {
		r.Range = DefaultAttendanceRange
	}

	var errs validator.ValidationErrors
	errs.Required("employeeId", r.EmployeeID)
	errs.Required("date", r.Date)
	errs.Required("checkOut", r.CheckOut)
	errs.Required("workHours", r.WorkHours)
	errs.Required("sheetId", r.SheetID)
	return errs.Err()
}

type CheckOutResponse struct {
	Row       int    `json:"row"`
	CheckOut  string `json:"checkOut"`
	WorkHours string `json:"workHours"`
}

// LeaveRequest is a leave application from the signed-in employee.
type LeaveRequest struct {
	Date        string      `json:"date"`
	LeaveOption LeaveOption `json:"leaveOption"`
	Reason      string      `json:"reason"`
	Detail      string      `json:"detail,omitempty"`
}

func (r *LeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !r.LeaveOption.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leaveOption",
			Message: "leaveOption must be one of ครึ่งวัน, 1 วัน, 2 วัน",
		})
	}

	errs.Required("reason", r.Reason)

	return errs.Err()
}

// CheckInResponse echoes the appended attendance row.
type CheckInResponse struct {
	AttendanceID string `json:"attendance_id"`
	Date         string `json:"date"`
	CheckIn      string `json:"checkIn"`
	Status       Status `json:"status"`
}
