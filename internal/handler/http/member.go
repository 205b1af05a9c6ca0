package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/member"
	"github.com/cmlabs-hris/liff-attendance-go/internal/handler/http/response"
)

type MemberHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type memberHandlerImpl struct {
	memberService member.MemberService
}

func NewMemberHandler(memberService member.MemberService) MemberHandler {
	return &memberHandlerImpl{memberService: memberService}
}

func (h *memberHandlerImpl) Signup(w http.ResponseWriter, r *http.Request) {
	var req member.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	m, err := h.memberService.Signup(r.Context(), lineUserFromContext(r), req)
	if err != nil {
		slog.Error("Signup error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "สมัครสมาชิกสำเร็จ", m)
}

func (h *memberHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	m, err := h.memberService.GetByUserID(r.Context(), getUserIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, m)
}

func (h *memberHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	bills, err := h.memberService.History(r.Context(), getUserIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, bills)
}
