package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/member"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/table"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/sheetrange"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Anything unrecognised is
// an upstream failure and is reported with its raw message.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Attendance
	case errors.Is(err, attendance.ErrNoAttendanceData),
		errors.Is(err, attendance.ErrCheckInNotFound),
		errors.Is(err, attendance.ErrNotCheckedIn):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidTime),
		errors.Is(err, attendance.ErrInvalidLeaveOption),
		errors.Is(err, sheetrange.ErrInvalidRange):
		BadRequest(w, err.Error(), nil)

	// Employees and members
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, member.ErrMemberNotFound):
		NotFound(w, "Member not found")
	case errors.Is(err, member.ErrPhoneExists),
		errors.Is(err, member.ErrAlreadyRegistered):
		Conflict(w, err.Error())

	// Config
	case errors.Is(err, table.ErrTableNotConfigured):
		NotFound(w, err.Error())

	default:
		InternalServerError(w, err.Error())
	}
}
