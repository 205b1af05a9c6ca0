package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/member"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/session"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet/sheettest"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tablesFunc func(ctx context.Context) (table.Registry, error)

func (f tablesFunc) Load(ctx context.Context) (table.Registry, error) { return f(ctx) }

var registry = table.Registry{
	table.Members:    {Name: table.Members, SheetID: "d", Range: "userLine!A:G"},
	table.Employees:  {Name: table.Employees, SheetID: "d", Range: "employees!A:H"},
	table.Attendance: {Name: table.Attendance, SheetID: "d", Range: "attendance!A:H"},
	table.Leaves:     {Name: table.Leaves, SheetID: "d", Range: "employee_leaves!A:I"},
}

func staticTables() tablesFunc {
	return func(ctx context.Context) (table.Registry, error) { return registry, nil }
}

func seeded() *sheettest.Store {
	store := sheettest.NewStore()
	store.Seed("d", "userLine", [][]string{
		{"created_at", "name", "phone", "displayName", "userId", "note", "userRole"},
		{"", "Somchai", "0812345678", "chai", "U1", "", "member"},
		{"", "Guest", "0899999999", "guest", "U3", "", "member"},
	})
	store.Seed("d", "employees", [][]string{
		{"employee_id", "nickname", "firstname", "lastname", "role", "userRole", "active", "userId"},
		{"E1", "Chai", "Somchai", "Dee", "staff", "employee", "TRUE", "U1"},
	})
	store.Seed("d", "attendance", [][]string{
		attendance.AttendanceHeader,
		{"a1", "", "E1", "2024-01-15", "09:00:00", "", "checked_in", ""},
	})
	store.Seed("d", "employee_leaves", [][]string{attendance.LeaveHeader})
	return store
}

var clock = func() time.Time { return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC) }

func TestBootstrap_Employee(t *testing.T) {
	svc := NewBootstrapService(seeded(), staticTables(), clock)

	state, err := svc.Bootstrap(context.Background(), member.LineUser{UserID: "U1", DisplayName: "chai"})
	require.NoError(t, err)
	assert.Equal(t, session.PhaseReady, state.Phase)
	require.NotNil(t, state.Member)
	require.NotNil(t, state.Employee)
	require.NotNil(t, state.Timeline)
	require.NotNil(t, state.Timeline.Today)
	assert.Equal(t, "a1", state.Timeline.Today.AttendanceID)
	assert.Len(t, state.Config, 4)
}

func TestBootstrap_MemberOnly(t *testing.T) {
	svc := NewBootstrapService(seeded(), staticTables(), clock)

	state, err := svc.Bootstrap(context.Background(), member.LineUser{UserID: "U3"})
	require.NoError(t, err)
	assert.Equal(t, session.PhaseReady, state.Phase)
	require.NotNil(t, state.Member)
	assert.Nil(t, state.Employee)
	assert.Nil(t, state.Timeline)
}

func TestBootstrap_NotRegistered(t *testing.T) {
	store := seeded()
	svc := NewBootstrapService(store, staticTables(), clock)

	state, err := svc.Bootstrap(context.Background(), member.LineUser{UserID: "U9"})
	require.NoError(t, err)
	assert.Equal(t, session.PhaseReady, state.Phase)
	assert.Nil(t, state.Member)
	assert.Len(t, store.Gets, 1)
}

func TestBootstrap_NoUser(t *testing.T) {
	store := seeded()
	svc := NewBootstrapService(store, staticTables(), clock)

	state, err := svc.Bootstrap(context.Background(), member.LineUser{})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.Equal(t, session.PhaseFailed, state.Phase)
	assert.Equal(t, 0, store.Calls())
}

func TestBootstrap_ConfigFailure(t *testing.T) {
	failing := tablesFunc(func(ctx context.Context) (table.Registry, error) {
		return nil, errors.New("config sheet unavailable")
	})
	svc := NewBootstrapService(seeded(), failing, clock)

	state, err := svc.Bootstrap(context.Background(), member.LineUser{UserID: "U1"})
	assert.EqualError(t, err, "config sheet unavailable")
	assert.Equal(t, session.PhaseFailed, state.Phase)
	assert.Equal(t, "config sheet unavailable", state.Error)
}

func TestBootstrap_CanceledBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := seeded()
	cancelling := tablesFunc(func(context.Context) (table.Registry, error) {
		cancel()
		return registry, nil
	})
	svc := NewBootstrapService(store, cancelling, clock)

	state, err := svc.Bootstrap(ctx, member.LineUser{UserID: "U1"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, session.PhaseFailed, state.Phase)
	assert.Nil(t, state.Employee)
}

func TestBootstrap_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := seeded()
	svc := NewBootstrapService(store, staticTables(), clock)

	state, err := svc.Bootstrap(ctx, member.LineUser{UserID: "U1"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, session.PhaseFailed, state.Phase)
	assert.Equal(t, 0, store.Calls())
}
