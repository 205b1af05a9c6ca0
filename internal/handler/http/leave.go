package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/liff-attendance-go/internal/handler/http/response"
)

type LeaveHandler interface {
	History(w http.ResponseWriter, r *http.Request)
	Request(w http.ResponseWriter, r *http.Request)
	Upcoming(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewLeaveHandler(attendanceService attendance.AttendanceService) LeaveHandler {
	return &leaveHandlerImpl{attendanceService: attendanceService}
}

func (h *leaveHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.attendanceService.LeaveHistory(r.Context(), getUserIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

func (h *leaveHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req attendance.LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	row, err := h.attendanceService.RequestLeave(r.Context(), getUserIDFromContext(r), req)
	if err != nil {
		slog.Error("Leave request error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "ส่งคำขอลาสำเร็จ", row)
}

func (h *leaveHandlerImpl) Upcoming(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.attendanceService.UpcomingLeaves(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}
