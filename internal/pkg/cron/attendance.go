package cron

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/notification"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/table"
)

// AttendanceJobs holds the read-only attendance jobs. They never write rows.
type AttendanceJobs struct {
	store    sheet.Store
	tables   table.TableService
	notifier notification.Notifier
	now      func() time.Time

	reminderHour     int
	reminderInterval time.Duration

	mu       sync.Mutex
	lastSent string
}

func NewAttendanceJobs(
	store sheet.Store,
	tables table.TableService,
	notifier notification.Notifier,
	now func() time.Time,
	reminderHour int,
	reminderInterval time.Duration,
) *AttendanceJobs {
	if now == nil {
		now = time.Now
	}
	return &AttendanceJobs{
		store:            store,
		tables:           tables,
		notifier:         notifier,
		now:              now,
		reminderHour:     reminderHour,
		reminderInterval: reminderInterval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("open_check_in_reminder", j.reminderInterval, j.RemindOpenCheckIns)
}

// RemindOpenCheckIns sends one message per day, during the reminder hour,
// listing employees who checked in today and have not checked out.
func (j *AttendanceJobs) RemindOpenCheckIns(ctx context.Context) error {
	now := j.now()
	if now.Hour() != j.reminderHour {
		return nil
	}
	today := attendance.FormatDate(now)

	j.mu.Lock()
	already := j.lastSent == today
	j.mu.Unlock()
	if already {
		return nil
	}

	reg, err := j.tables.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}
	attRecs, err := j.read(ctx, reg, table.Attendance)
	if err != nil {
		return err
	}
	empRecs, err := j.read(ctx, reg, table.Employees)
	if err != nil {
		return err
	}

	names := make(map[string]string)
	for _, e := range employee.Parse(empRecs) {
		names[e.EmployeeID] = e.DisplayName()
	}

	var open []string
	for _, row := range attendance.ParseAttendanceRows(attRecs) {
		if row.Status != attendance.StatusCheckedIn || !attendance.SameDay(row.Date, today) {
			continue
		}
		name := names[row.EmployeeID]
		if name == "" {
			name = row.EmployeeID
		}
		open = append(open, fmt.Sprintf("%s (check-in %s)", name, row.CheckIn))
	}

	if len(open) == 0 {
		slog.Info("Cron: No open check-ins", "date", today)
	} else {
		msg := notification.Message{
			Title:    "Open check-ins",
			Text:     fmt.Sprintf("Not checked out yet on %s:\n%s", today, strings.Join(open, "\n")),
			Audience: notification.AudienceAdmin,
		}
		if err := j.notifier.Send(ctx, msg); err != nil {
			return fmt.Errorf("failed to send reminder: %w", err)
		}
		slog.Info("Cron: Sent open check-in reminder", "date", today, "count", len(open))
	}

	j.mu.Lock()
	j.lastSent = today
	j.mu.Unlock()
	return nil
}

func (j *AttendanceJobs) read(ctx context.Context, reg table.Registry, name string) ([]sheet.Record, error) {
	tbl, err := reg.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	values, err := j.store.Get(ctx, tbl.SheetID, tbl.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return sheet.ToRecords(values), nil
}
