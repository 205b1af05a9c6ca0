package attendance

import (
	"strings"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
)

// Attendance sheet layout, range A:H. Readers map by header name, writers by
// column index, so both must agree with this list.
const (
	ColAttendanceID = iota
	ColCreatedAt
	ColEmployeeID
	ColDate
	ColCheckIn
	ColCheckOut
	ColStatus
	ColWorkHours

	attendanceColumns
)

// AttendanceHeader is the header row of the attendance sheet.
var AttendanceHeader = []string{
	"attendance_id", "created_at", "employee_id", "date",
	"checkIn", "checkOut", "status", "workHours",
}

// Leave sheet layout, range A:I.
const (
	ColLeaveID = iota
	ColLeaveCreatedAt
	ColLeaveEmployeeID
	ColLeaveDate
	ColLeaveOption
	ColLeaveDays
	ColLeaveReason
	ColLeaveDetail
	ColLeaveApproval

	leaveColumns
)

var LeaveHeader = []string{
	"leave_id", "created_at", "employee_id", "date",
	"leave_option", "days", "reason", "detail", "approval",
}

const (
	DefaultAttendanceRange = "attendance!A:H"
	DefaultLeaveRange      = "employee_leaves!A:I"
)

type Status string

const (
	StatusCheckedIn Status = "checked_in"
	StatusCompleted Status = "completed"
)

type LeaveOption string

const (
	LeaveHalfDay LeaveOption = "ครึ่งวัน"
	LeaveOneDay  LeaveOption = "1 วัน"
	LeaveTwoDays LeaveOption = "2 วัน"
)

// Days returns the number of days the option books, or 0 for unknown options.
func (o LeaveOption) Days() float64 {
	switch o {
	case LeaveHalfDay:
		return 0.5
	case LeaveOneDay:
		return 1
	case LeaveTwoDays:
		return 2
	default:
		return 0
	}
}

func (o LeaveOption) IsValid() bool {
	return o.Days() > 0
}

type AttendanceRow struct {
	AttendanceID string
	CreatedAt    string
	EmployeeID   string
	Date         string
	CheckIn      string
	CheckOut     string
	Status       Status
	WorkHours    string
}

// Cells returns the row in sheet column order.
func (r AttendanceRow) Cells() []string {
	cells := make([]string, attendanceColumns)
	cells[ColAttendanceID] = r.AttendanceID
	cells[ColCreatedAt] = r.CreatedAt
	cells[ColEmployeeID] = r.EmployeeID
	cells[ColDate] = r.Date
	cells[ColCheckIn] = r.CheckIn
	cells[ColCheckOut] = r.CheckOut
	cells[ColStatus] = string(r.Status)
	cells[ColWorkHours] = r.WorkHours
	return cells
}

type LeaveRow struct {
	LeaveID     string      `json:"leave_id"`
	CreatedAt   string      `json:"created_at"`
	EmployeeID  string      `json:"employee_id"`
	Date        string      `json:"date"`
	LeaveOption LeaveOption `json:"leave_option"`
	Days        string      `json:"days"`
	Reason      string      `json:"reason"`
	Detail      string      `json:"detail"`
	Approval    string      `json:"approval"`
}

// Approved reports manager sign-off; anything but "TRUE" is pending.
func (r LeaveRow) Approved() bool {
	return strings.EqualFold(strings.TrimSpace(r.Approval), "TRUE")
}

func (r LeaveRow) Cells() []string {
	cells := make([]string, leaveColumns)
	cells[ColLeaveID] = r.LeaveID
	cells[ColLeaveCreatedAt] = r.CreatedAt
	cells[ColLeaveEmployeeID] = r.EmployeeID
	cells[ColLeaveDate] = r.Date
	cells[ColLeaveOption] = string(r.LeaveOption)
	cells[ColLeaveDays] = r.Days
	cells[ColLeaveReason] = r.Reason
	cells[ColLeaveDetail] = r.Detail
	cells[ColLeaveApproval] = r.Approval
	return cells
}

// ParseAttendanceRows converts sheet records into typed rows. Missing fields
// default to "".
func ParseAttendanceRows(records []sheet.Record) []AttendanceRow {
	rows := make([]AttendanceRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, AttendanceRow{
			AttendanceID: r.Get("attendance_id"),
			CreatedAt:    r.Get("created_at"),
			EmployeeID:   r.Get("employee_id"),
			Date:         r.Get("date"),
			CheckIn:      r.Get("checkIn"),
			CheckOut:     r.Get("checkOut"),
			Status:       Status(r.Get("status")),
			WorkHours:    r.Get("workHours"),
		})
	}
	return rows
}

// ParseLeaveRows converts sheet records into typed rows. A missing approval
// defaults to "FALSE".
func ParseLeaveRows(records []sheet.Record) []LeaveRow {
	rows := make([]LeaveRow, 0, len(records))
	for _, r := range records {
		approval := r.Get("approval")
		if approval == "" {
			approval = "FALSE"
		}
		rows = append(rows, LeaveRow{
			LeaveID:     r.Get("leave_id"),
			CreatedAt:   r.Get("created_at"),
			EmployeeID:  r.Get("employee_id"),
			Date:        r.Get("date"),
			LeaveOption: LeaveOption(r.Get("leave_option")),
			Days:        r.Get("days"),
			Reason:      r.Get("reason"),
			Detail:      r.Get("detail"),
			Approval:    approval,
		})
	}
	return rows
}

// Kind tags where a merged day's data came from.
type Kind string

const (
	KindAttendance Kind = "attendance"
	KindLeave      Kind = "leave"
	KindMixed      Kind = "mixed"
)

type LeaveStatus string

const (
	LeaveApproved LeaveStatus = "leave_approved"
	LeavePending  LeaveStatus = "leave_pending"
)

// Text is the label shown in the mini-app.
func (s LeaveStatus) Text() string {
	if s == LeaveApproved {
		return "อนุมัติ"
	}
	return "รออนุมัติ"
}

// MergedDayRecord is one calendar day of an employee's timeline.
type MergedDayRecord struct {
	AttendanceID string `json:"attendance_id"`
	CreatedAt    string `json:"created_at"`
	EmployeeID   string `json:"employee_id"`
	Date         string `json:"date"`
	CheckIn      string `json:"checkIn"`
	CheckOut     string `json:"checkOut"`
	Status       string `json:"status"`
	WorkHours    string `json:"workHours"`
	Kind         Kind   `json:"type"`

	LeaveType       string      `json:"leaveType,omitempty"`
	LeaveReason     string      `json:"leaveReason,omitempty"`
	LeaveDetail     string      `json:"leaveDetail,omitempty"`
	LeaveDays       string      `json:"leaveDays,omitempty"`
	LeaveStatus     LeaveStatus `json:"leaveStatus,omitempty"`
	LeaveStatusText string      `json:"leaveStatusText,omitempty"`

	day     calendarDay
	dateKey string
}

// HasAttendance reports whether the record carries check-in data.
func (m MergedDayRecord) HasAttendance() bool {
	return m.Kind == KindAttendance || m.Kind == KindMixed
}

// Timeline is the reconciled view of one employee.
type Timeline struct {
	Records []MergedDayRecord `json:"records"`
	Today   *MergedDayRecord  `json:"today"`
}
