package attendance

import (
	"sort"
	"strings"
	"time"
)

// calendarDay is a date with the time of day dropped. Dates are compared by
// their written year/month/day; no timezone conversion is applied.
type calendarDay struct {
	t  time.Time
	ok bool
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006",
}

func parseDay(s string) calendarDay {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dayOf(t)
		}
	}
	return calendarDay{}
}

func dayOf(t time.Time) calendarDay {
	y, m, d := t.Date()
	return calendarDay{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), ok: true}
}

// key is the merge identity of a date: the normalised YYYY-MM-DD when the
// date parses, otherwise the raw string.
func (c calendarDay) key(raw string) string {
	if !c.ok {
		return raw
	}
	return c.t.Format("2006-01-02")
}

// FormatDate renders t as the calendar date stored in the sheets.
func FormatDate(t time.Time) string {
	return dayOf(t).t.Format("2006-01-02")
}

// SameDay reports whether two sheet dates denote the same calendar day.
func SameDay(a, b string) bool {
	da, db := parseDay(a), parseDay(b)
	if da.ok && db.ok {
		return da.t.Equal(db.t)
	}
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

// RetentionHorizon is the first day of the calendar month before today.
// Records dated earlier are left out of the timeline.
func RetentionHorizon(today time.Time) time.Time {
	y, m, _ := today.Date()
	return time.Date(y, m-1, 1, 0, 0, 0, 0, time.UTC)
}

// Reconcile merges one employee's attendance and leave rows into a per-day
// timeline, newest first, and picks today's attendance record.
//
// Input order matters: a later attendance row for the same date replaces an
// earlier one, and a later leave row overwrites the leave fields of an
// earlier one. A blank employeeID yields an empty timeline.
func Reconcile(attendanceRows []AttendanceRow, leaveRows []LeaveRow, employeeID string, today time.Time) Timeline {
	timeline := Timeline{Records: make([]MergedDayRecord, 0)}
	if strings.TrimSpace(employeeID) == "" {
		return timeline
	}

	byDate := make(map[string]*MergedDayRecord)
	var order []string

	put := func(key string, rec *MergedDayRecord) {
		if _, exists := byDate[key]; !exists {
			order = append(order, key)
		}
		byDate[key] = rec
	}

	for _, row := range attendanceRows {
		if row.EmployeeID != employeeID {
			continue
		}
		day := parseDay(row.Date)
		key := day.key(row.Date)
		put(key, &MergedDayRecord{
			AttendanceID: row.AttendanceID,
			CreatedAt:    row.CreatedAt,
			EmployeeID:   row.EmployeeID,
			Date:         row.Date,
			CheckIn:      row.CheckIn,
			CheckOut:     row.CheckOut,
			Status:       string(row.Status),
			WorkHours:    row.WorkHours,
			Kind:         KindAttendance,
			day:          day,
			dateKey:      key,
		})
	}

	for _, row := range leaveRows {
		if row.EmployeeID != employeeID {
			continue
		}
		day := parseDay(row.Date)
		key := day.key(row.Date)

		rec, exists := byDate[key]
		if !exists {
			id := row.LeaveID
			if id == "" {
				id = "leave-" + key
			}
			rec = &MergedDayRecord{
				AttendanceID: id,
				CreatedAt:    row.CreatedAt,
				EmployeeID:   row.EmployeeID,
				Date:         row.Date,
				Kind:         KindLeave,
				day:          day,
				dateKey:      key,
			}
			put(key, rec)
		} else if rec.Kind == KindAttendance {
			rec.Kind = KindMixed
		}
		applyLeave(rec, row)
	}

	horizon := RetentionHorizon(today)
	for _, key := range order {
		rec := byDate[key]
		if rec.day.ok && rec.day.t.Before(horizon) {
			continue
		}
		timeline.Records = append(timeline.Records, *rec)
	}

	sortDescending(timeline.Records)

	todayDay := dayOf(today)
	for i := range timeline.Records {
		rec := &timeline.Records[i]
		if rec.day.ok && rec.day.t.Equal(todayDay.t) && rec.Kind != KindLeave {
			timeline.Today = rec
			break
		}
	}

	return timeline
}

func applyLeave(rec *MergedDayRecord, row LeaveRow) {
	status := LeavePending
	if row.Approved() {
		status = LeaveApproved
	}

	rec.LeaveType = string(row.LeaveOption)
	rec.LeaveReason = row.Reason
	rec.LeaveDetail = row.Detail
	rec.LeaveDays = row.Days
	rec.LeaveStatus = status
	rec.LeaveStatusText = status.Text()

	if rec.Kind == KindLeave {
		rec.Status = string(status)
	}
}

// sortDescending orders records newest first. Records with unparseable dates
// go last, keeping their relative order.
func sortDescending(records []MergedDayRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].day, records[j].day
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		return a.t.After(b.t)
	})
}

// LeaveHistory returns the employee's leave rows, newest first.
func LeaveHistory(leaveRows []LeaveRow, employeeID string) []LeaveRow {
	history := make([]LeaveRow, 0)
	if strings.TrimSpace(employeeID) == "" {
		return history
	}
	for _, row := range leaveRows {
		if row.EmployeeID == employeeID {
			history = append(history, row)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		a, b := parseDay(history[i].Date), parseDay(history[j].Date)
		if a.ok != b.ok {
			return a.ok
		}
		return a.ok && a.t.After(b.t)
	})
	return history
}

// ScheduledLeave is one entry of the team leave schedule.
type ScheduledLeave struct {
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	LeaveType    string `json:"leaveType"`
	LeaveReason  string `json:"leaveReason"`
	LeaveDays    string `json:"leaveDays"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

// UpcomingLeaves lists approved leaves dated today or later, oldest first.
// names maps employee_id to display name; leaves of employees missing from
// names are skipped.
func UpcomingLeaves(leaveRows []LeaveRow, names map[string]string, today time.Time) []ScheduledLeave {
	todayDay := dayOf(today)

	type dated struct {
		leave ScheduledLeave
		day   time.Time
	}
	var upcoming []dated
	for _, row := range leaveRows {
		if !row.Approved() {
			continue
		}
		name, ok := names[row.EmployeeID]
		if !ok {
			continue
		}
		day := parseDay(row.Date)
		if !day.ok || day.t.Before(todayDay.t) {
			continue
		}
		upcoming = append(upcoming, dated{
			leave: ScheduledLeave{
				EmployeeID:   row.EmployeeID,
				EmployeeName: name,
				LeaveType:    string(row.LeaveOption),
				LeaveReason:  row.Reason,
				LeaveDays:    row.Days,
				Date:         row.Date,
				Status:       "Approved",
			},
			day: day.t,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].day.Before(upcoming[j].day)
	})

	result := make([]ScheduledLeave, 0, len(upcoming))
	for _, u := range upcoming {
		result = append(result, u.leave)
	}
	return result
}
