package member

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/member"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/notification"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/table"
	notifysvc "github.com/cmlabs-hris/liff-attendance-go/internal/service/notification"
)

const defaultUserRole = "member"

type MemberServiceImpl struct {
	store    sheet.Store
	tables   table.TableService
	notifier notification.Notifier
	now      func() time.Time
}

func NewMemberService(store sheet.Store, tables table.TableService, notifier notification.Notifier, now func() time.Time) member.MemberService {
	if now == nil {
		now = time.Now
	}
	return &MemberServiceImpl{
		store:    store,
		tables:   tables,
		notifier: notifier,
		now:      now,
	}
}

func (s *MemberServiceImpl) read(ctx context.Context, name string) (table.Table, []sheet.Record, error) {
	reg, err := s.tables.Load(ctx)
	if err != nil {
		return table.Table{}, nil, err
	}
	tbl, err := reg.Lookup(name)
	if err != nil {
		return table.Table{}, nil, err
	}
	values, err := s.store.Get(ctx, tbl.SheetID, tbl.Range)
	if err != nil {
		slog.Error("Failed to read sheet", "table", name, "error", err)
		return table.Table{}, nil, err
	}
	return tbl, sheet.ToRecords(values), nil
}

// Signup implements member.MemberService.
func (s *MemberServiceImpl) Signup(ctx context.Context, user member.LineUser, req member.SignupRequest) (member.Member, error) {
	if err := req.Validate(); err != nil {
		return member.Member{}, err
	}

	tbl, recs, err := s.read(ctx, table.Members)
	if err != nil {
		return member.Member{}, err
	}
	members := member.Parse(recs)

	if _, err := member.FindByUserID(members, user.UserID); err == nil {
		return member.Member{}, member.ErrAlreadyRegistered
	}
	if member.PhoneTaken(members, req.Phone) {
		return member.Member{}, member.ErrPhoneExists
	}

	m := member.Member{
		CreatedAt:   s.now().Format("2006-01-02 15:04:05"),
		Name:        req.Name,
		Phone:       req.Phone,
		DisplayName: user.DisplayName,
		UserID:      user.UserID,
		Note:        req.Note,
		UserRole:    defaultUserRole,
	}
	if _, err := s.store.Append(ctx, tbl.SheetID, tbl.Range, m.Cells()); err != nil {
		slog.Error("Failed to append member", "user_id", user.UserID, "error", err)
		return member.Member{}, err
	}

	notifysvc.BestEffort(ctx, s.notifier, notification.Message{
		Title: "สมาชิกใหม่",
		Text:  fmt.Sprintf("%s (%s) สมัครสมาชิกแล้ว", m.Name, m.Phone),
	})

	return m, nil
}

// GetByUserID implements member.MemberService.
func (s *MemberServiceImpl) GetByUserID(ctx context.Context, userID string) (member.Member, error) {
	_, recs, err := s.read(ctx, table.Members)
	if err != nil {
		return member.Member{}, err
	}
	return member.FindByUserID(member.Parse(recs), userID)
}

// History implements member.MemberService.
func (s *MemberServiceImpl) History(ctx context.Context, userID string) ([]member.Bill, error) {
	if _, err := s.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}
	_, recs, err := s.read(ctx, table.History)
	if err != nil {
		return nil, err
	}
	return member.BillsOf(member.ParseBills(recs), userID), nil
}
