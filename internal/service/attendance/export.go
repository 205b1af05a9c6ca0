package attendance

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Attendance"

var exportHeader = []interface{}{
	"Date", "Type", "Check-in", "Check-out", "Work Hours", "Status",
	"Leave Type", "Leave Reason", "Leave Status",
}

// Export implements attendance.AttendanceService. It writes the caller's
// timeline as an XLSX workbook.
func (s *AttendanceServiceImpl) Export(ctx context.Context, userID string, w io.Writer) error {
	timeline, err := s.Timeline(ctx, userID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("name export sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#06C755"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "I1", headerStyle); err != nil {
		return err
	}

	for i, rec := range timeline.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			rec.Date, string(rec.Kind), rec.CheckIn, rec.CheckOut, rec.WorkHours, rec.Status,
			rec.LeaveType, rec.LeaveReason, rec.LeaveStatusText,
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "I", 16); err != nil {
		return err
	}

	return f.Write(w)
}
