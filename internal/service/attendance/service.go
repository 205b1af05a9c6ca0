package attendance

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/notification"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/table"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/sheetrange"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/validator"
	notifysvc "github.com/cmlabs-hris/liff-attendance-go/internal/service/notification"
	"github.com/google/uuid"
)

const timestampLayout = "2006-01-02 15:04:05"

type AttendanceServiceImpl struct {
	store    sheet.Store
	tables   table.TableService
	notifier notification.Notifier
	now      func() time.Time
	newID    func() string
}

type Option func(*AttendanceServiceImpl)

// WithClock overrides the service clock. Its location decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *AttendanceServiceImpl) { s.newID = newID }
}

func NewAttendanceService(
	store sheet.Store,
	tables table.TableService,
	notifier notification.Notifier,
	opts ...Option,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		store:    store,
		tables:   tables,
		notifier: notifier,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// employeeContext is what every per-user operation needs from the sheets.
type employeeContext struct {
	registry table.Registry
	employee employee.Employee
}

func (s *AttendanceServiceImpl) resolve(ctx context.Context, userID string) (employeeContext, error) {
	reg, err := s.tables.Load(ctx)
	if err != nil {
		return employeeContext{}, err
	}
	employees, err := s.employees(ctx, reg)
	if err != nil {
		return employeeContext{}, err
	}
	emp, err := employee.FindByUserID(employees, userID)
	if err != nil {
		return employeeContext{}, err
	}
	return employeeContext{registry: reg, employee: emp}, nil
}

func (s *AttendanceServiceImpl) records(ctx context.Context, reg table.Registry, name string) ([]sheet.Record, error) {
	tbl, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	values, err := s.store.Get(ctx, tbl.SheetID, tbl.Range)
	if err != nil {
		slog.Error("Failed to read sheet", "table", name, "error", err)
		return nil, err
	}
	return sheet.ToRecords(values), nil
}

func (s *AttendanceServiceImpl) employees(ctx context.Context, reg table.Registry) ([]employee.Employee, error) {
	recs, err := s.records(ctx, reg, table.Employees)
	if err != nil {
		return nil, err
	}
	return employee.Parse(recs), nil
}

func (s *AttendanceServiceImpl) attendanceRows(ctx context.Context, reg table.Registry) ([]attendance.AttendanceRow, error) {
	recs, err := s.records(ctx, reg, table.Attendance)
	if err != nil {
		return nil, err
	}
	return attendance.ParseAttendanceRows(recs), nil
}

func (s *AttendanceServiceImpl) leaveRows(ctx context.Context, reg table.Registry) ([]attendance.LeaveRow, error) {
	recs, err := s.records(ctx, reg, table.Leaves)
	if err != nil {
		return nil, err
	}
	return attendance.ParseLeaveRows(recs), nil
}

// Timeline implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Timeline(ctx context.Context, userID string) (attendance.Timeline, error) {
	ec, err := s.resolve(ctx, userID)
	if err != nil {
		return attendance.Timeline{}, err
	}
	return s.timelineFor(ctx, ec)
}

func (s *AttendanceServiceImpl) timelineFor(ctx context.Context, ec employeeContext) (attendance.Timeline, error) {
	attRows, err := s.attendanceRows(ctx, ec.registry)
	if err != nil {
		return attendance.Timeline{}, err
	}
	leaves, err := s.leaveRows(ctx, ec.registry)
	if err != nil {
		return attendance.Timeline{}, err
	}
	return attendance.Reconcile(attRows, leaves, ec.employee.EmployeeID, s.now()), nil
}

func todayRow(rows []attendance.AttendanceRow, employeeID string, today string) (attendance.AttendanceRow, bool) {
	for _, row := range rows {
		if row.EmployeeID == employeeID && attendance.SameDay(row.Date, today) {
			return row, true
		}
	}
	return attendance.AttendanceRow{}, false
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string) (attendance.CheckInResponse, error) {
	ec, err := s.resolve(ctx, userID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	rows, err := s.attendanceRows(ctx, ec.registry)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	now := s.now()
	today := attendance.FormatDate(now)
	if _, found := todayRow(rows, ec.employee.EmployeeID, today); found {
		return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
	}

	tbl, err := ec.registry.Lookup(table.Attendance)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	row := attendance.AttendanceRow{
		AttendanceID: s.newID(),
		CreatedAt:    now.Format(timestampLayout),
		EmployeeID:   ec.employee.EmployeeID,
		Date:         today,
		CheckIn:      attendance.ClockString(now),
		Status:       attendance.StatusCheckedIn,
	}
	if _, err := s.store.Append(ctx, tbl.SheetID, tbl.Range, row.Cells()); err != nil {
		slog.Error("Failed to append check-in", "employee_id", row.EmployeeID, "error", err)
		return attendance.CheckInResponse{}, err
	}

	notifysvc.BestEffort(ctx, s.notifier, attendance.CheckInMessage(ec.employee.DisplayName(), row.CheckIn))

	return attendance.CheckInResponse{
		AttendanceID: row.AttendanceID,
		Date:         row.Date,
		CheckIn:      row.CheckIn,
		Status:       row.Status,
	}, nil
}

// CheckOutToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOutToday(ctx context.Context, userID string) (attendance.CheckOutResponse, error) {
	ec, err := s.resolve(ctx, userID)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	rows, err := s.attendanceRows(ctx, ec.registry)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	now := s.now()
	row, found := todayRow(rows, ec.employee.EmployeeID, attendance.FormatDate(now))
	if !found {
		return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
	}
	if row.Status == attendance.StatusCompleted || row.CheckOut != "" {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut := attendance.ClockString(now)
	workHours, err := attendance.WorkHours(row.CheckIn, checkOut)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	tbl, err := ec.registry.Lookup(table.Attendance)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	return s.CheckOut(ctx, attendance.CheckOutRequest{
		EmployeeID: ec.employee.EmployeeID,
		Date:       row.Date,
		CheckOut:   checkOut,
		WorkHours:  workHours,
		SheetID:    tbl.SheetID,
		Range:      tbl.Range,
		Nickname:   ec.employee.DisplayName(),
	})
}

// CheckOut implements attendance.AttendanceService. It reads the whole range,
// finds the first row for the employee and date, and rewrites that row with
// the checkout fields. There is no version check between the read and the
// write: two concurrent checkouts for the same row both succeed and the
// later write wins.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	rng, err := sheetrange.Parse(req.Range)
	if err != nil {
		return attendance.CheckOutResponse{}, validator.ValidationErrors{{
			Field:   "range",
			Message: err.Error(),
		}}
	}

	values, err := s.store.Get(ctx, req.SheetID, req.Range)
	if err != nil {
		slog.Error("Failed to read attendance for checkout", "sheet_id", req.SheetID, "error", err)
		return attendance.CheckOutResponse{}, err
	}
	if len(values) <= 1 {
		return attendance.CheckOutResponse{}, attendance.ErrNoAttendanceData
	}

	matchIndex := -1
	for i, row := range values[1:] {
		if sheet.Cell(row, attendance.ColEmployeeID) == req.EmployeeID &&
			attendance.SameDay(sheet.Cell(row, attendance.ColDate), req.Date) {
			matchIndex = i
			break
		}
	}
	if matchIndex < 0 {
		return attendance.CheckOutResponse{}, attendance.ErrCheckInNotFound
	}

	updated := make([]string, len(attendance.AttendanceHeader))
	copy(updated, values[1+matchIndex])
	updated[attendance.ColCheckOut] = req.CheckOut
	updated[attendance.ColStatus] = string(attendance.StatusCompleted)
	updated[attendance.ColWorkHours] = req.WorkHours

	rowNumber := rng.DataRow(matchIndex)
	if err := s.store.Update(ctx, req.SheetID, rng.Row(rowNumber), updated); err != nil {
		slog.Error("Failed to write checkout", "sheet_id", req.SheetID, "row", rowNumber, "error", err)
		return attendance.CheckOutResponse{}, err
	}

	notifysvc.BestEffort(ctx, s.notifier, attendance.CheckOutMessage(req.Nickname, req.CheckOut, req.WorkHours))

	return attendance.CheckOutResponse{
		Row:       rowNumber,
		CheckOut:  req.CheckOut,
		WorkHours: req.WorkHours,
	}, nil
}

// RequestLeave implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RequestLeave(ctx context.Context, userID string, req attendance.LeaveRequest) (attendance.LeaveRow, error) {
	if err := req.Validate(); err != nil {
		return attendance.LeaveRow{}, err
	}

	ec, err := s.resolve(ctx, userID)
	if err != nil {
		return attendance.LeaveRow{}, err
	}
	tbl, err := ec.registry.Lookup(table.Leaves)
	if err != nil {
		return attendance.LeaveRow{}, err
	}

	row := attendance.LeaveRow{
		LeaveID:     s.newID(),
		CreatedAt:   s.now().Format(timestampLayout),
		EmployeeID:  ec.employee.EmployeeID,
		Date:        req.Date,
		LeaveOption: req.LeaveOption,
		Days:        strconv.FormatFloat(req.LeaveOption.Days(), 'f', -1, 64),
		Reason:      req.Reason,
		Detail:      req.Detail,
		Approval:    "FALSE",
	}
	if _, err := s.store.Append(ctx, tbl.SheetID, tbl.Range, row.Cells()); err != nil {
		slog.Error("Failed to append leave request", "employee_id", row.EmployeeID, "error", err)
		return attendance.LeaveRow{}, err
	}

	notifysvc.BestEffort(ctx, s.notifier, attendance.LeaveMessage(ec.employee.DisplayName(), row))

	return row, nil
}

// LeaveHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) LeaveHistory(ctx context.Context, userID string) ([]attendance.LeaveRow, error) {
	ec, err := s.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaveRows(ctx, ec.registry)
	if err != nil {
		return nil, err
	}
	return attendance.LeaveHistory(leaves, ec.employee.EmployeeID), nil
}

// UpcomingLeaves implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpcomingLeaves(ctx context.Context) ([]attendance.ScheduledLeave, error) {
	reg, err := s.tables.Load(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.employees(ctx, reg)
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaveRows(ctx, reg)
	if err != nil {
		return nil, err
	}
	return attendance.UpcomingLeaves(leaves, employee.ActiveNames(employees), s.now()), nil
}
