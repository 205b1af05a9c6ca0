package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/liff-attendance-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	CheckOut(w http.ResponseWriter, r *http.Request)
	// Signed-in employee
	Timeline(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOutToday(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckOut updates the attendance row matching employeeId and date.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		slog.Error("Checkout error", "employee_id", req.EmployeeID, "date", req.Date, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "เช็คเอาท์สำเร็จ", resp)
}

func (h *attendanceHandlerImpl) Timeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.attendanceService.Timeline(r.Context(), getUserIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, timeline)
}

func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.CheckIn(r.Context(), getUserIDFromContext(r))
	if err != nil {
		slog.Error("Check-in error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "เช็คอินสำเร็จ", resp)
}

func (h *attendanceHandlerImpl) CheckOutToday(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.CheckOutToday(r.Context(), getUserIDFromContext(r))
	if err != nil {
		slog.Error("Check-out error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "เช็คเอาท์สำเร็จ", resp)
}

func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.attendanceService.Export(r.Context(), getUserIDFromContext(r), &buf); err != nil {
		slog.Error("Attendance export error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, xlsxContentType, fmt.Sprintf("attendance-%s.xlsx", getUserIDFromContext(r)), buf.Bytes())
}
