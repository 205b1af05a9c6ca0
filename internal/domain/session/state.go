package session

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/member"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/table"
)

type Phase string

const (
	PhaseIdle                Phase = "idle"
	PhaseRestoringSession    Phase = "restoring_session"
	PhaseLoadingConfig       Phase = "loading_config"
	PhaseLoadingEmployeeData Phase = "loading_employee_data"
	PhaseReady               Phase = "ready"
	PhaseFailed              Phase = "failed"
)

var ErrInvalidTransition = errors.New("invalid bootstrap transition")

var transitions = map[Phase][]Phase{
	PhaseIdle:                {PhaseRestoringSession, PhaseFailed},
	PhaseRestoringSession:    {PhaseLoadingConfig, PhaseFailed},
	PhaseLoadingConfig:       {PhaseLoadingEmployeeData, PhaseReady, PhaseFailed},
	PhaseLoadingEmployeeData: {PhaseReady, PhaseFailed},
}

// AppState is everything the mini-app needs after sign-in. It is built step by
// step through its setters and is not shared between requests.
type AppState struct {
	Phase    Phase                `json:"phase"`
	User     member.LineUser      `json:"user"`
	Config   table.Registry       `json:"config,omitempty"`
	Member   *member.Member       `json:"member"`
	Employee *employee.Employee   `json:"employee"`
	Timeline *attendance.Timeline `json:"timeline"`
	Error    string               `json:"error,omitempty"`
}

func NewAppState() *AppState {
	return &AppState{Phase: PhaseIdle}
}

// Advance moves to the next phase, rejecting moves the bootstrap order does
// not allow.
func (s *AppState) Advance(to Phase) error {
	for _, next := range transitions[s.Phase] {
		if next == to {
			s.Phase = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Phase, to)
}

// Fail records err and ends in PhaseFailed. It returns err unchanged.
func (s *AppState) Fail(err error) error {
	s.Phase = PhaseFailed
	if err != nil {
		s.Error = err.Error()
	}
	return err
}

func (s *AppState) SetUser(u member.LineUser)         { s.User = u }
func (s *AppState) SetConfig(r table.Registry)        { s.Config = r }
func (s *AppState) SetMember(m member.Member)         { s.Member = &m }
func (s *AppState) SetEmployee(e employee.Employee)   { s.Employee = &e }
func (s *AppState) SetTimeline(t attendance.Timeline) { s.Timeline = &t }

func (s *AppState) Ready() bool {
	return s.Phase == PhaseReady
}
