package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/member"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/session"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/table"
)

type BootstrapServiceImpl struct {
	store  sheet.Store
	tables table.TableService
	now    func() time.Time
}

func NewBootstrapService(store sheet.Store, tables table.TableService, now func() time.Time) session.BootstrapService {
	if now == nil {
		now = time.Now
	}
	return &BootstrapServiceImpl{store: store, tables: tables, now: now}
}

// Bootstrap implements session.BootstrapService. Steps run one after another
// and each checks ctx before touching the sheets.
func (s *BootstrapServiceImpl) Bootstrap(ctx context.Context, user member.LineUser) (*session.AppState, error) {
	state := session.NewAppState()

	step := func(to session.Phase) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return state.Advance(to)
	}

	// Session
	if err := step(session.PhaseRestoringSession); err != nil {
		return state, state.Fail(err)
	}
	if user.UserID == "" {
		return state, state.Fail(auth.ErrInvalidToken)
	}
	state.SetUser(user)

	// Config
	if err := step(session.PhaseLoadingConfig); err != nil {
		return state, state.Fail(err)
	}
	reg, err := s.tables.Load(ctx)
	if err != nil {
		return state, state.Fail(err)
	}
	state.SetConfig(reg)

	members, err := s.records(ctx, reg, table.Members)
	if err != nil {
		return state, state.Fail(err)
	}
	m, err := member.FindByUserID(member.Parse(members), user.UserID)
	if errors.Is(err, member.ErrMemberNotFound) {
		// Not signed up yet; the mini-app shows the signup form.
		return state, state.Advance(session.PhaseReady)
	}
	state.SetMember(m)

	// Employee data
	if err := step(session.PhaseLoadingEmployeeData); err != nil {
		return state, state.Fail(err)
	}
	employees, err := s.records(ctx, reg, table.Employees)
	if err != nil {
		return state, state.Fail(err)
	}
	emp, err := employee.FindByUserID(employee.Parse(employees), user.UserID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return state, state.Advance(session.PhaseReady)
	}
	state.SetEmployee(emp)

	if err := ctx.Err(); err != nil {
		return state, state.Fail(err)
	}
	attRecs, err := s.records(ctx, reg, table.Attendance)
	if err != nil {
		return state, state.Fail(err)
	}
	if err := ctx.Err(); err != nil {
		return state, state.Fail(err)
	}
	leaveRecs, err := s.records(ctx, reg, table.Leaves)
	if err != nil {
		return state, state.Fail(err)
	}
	state.SetTimeline(attendance.Reconcile(
		attendance.ParseAttendanceRows(attRecs),
		attendance.ParseLeaveRows(leaveRecs),
		emp.EmployeeID,
		s.now(),
	))

	return state, state.Advance(session.PhaseReady)
}

func (s *BootstrapServiceImpl) records(ctx context.Context, reg table.Registry, name string) ([]sheet.Record, error) {
	tbl, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	values, err := s.store.Get(ctx, tbl.SheetID, tbl.Range)
	if err != nil {
		slog.Error("Bootstrap failed to read sheet", "table", name, "error", err)
		return nil, err
	}
	return sheet.ToRecords(values), nil
}
