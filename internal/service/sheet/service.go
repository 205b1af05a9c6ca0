package sheet

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/notification"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	notifysvc "github.com/cmlabs-hris/liff-attendance-go/internal/service/notification"
)

type SheetServiceImpl struct {
	store    sheet.Store
	notifier notification.Notifier
}

func NewSheetService(store sheet.Store, notifier notification.Notifier) sheet.Service {
	return &SheetServiceImpl{
		store:    store,
		notifier: notifier,
	}
}

// Get implements sheet.Service.
func (s *SheetServiceImpl) Get(ctx context.Context, req sheet.GetRequest) ([]sheet.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	values, err := s.store.Get(ctx, req.Sheet.SheetID, req.Sheet.Range)
	if err != nil {
		slog.Error("Failed to read sheet", "sheet_id", req.Sheet.SheetID, "range", req.Sheet.Range, "error", err)
		return nil, err
	}
	return sheet.ToRecords(values), nil
}

// Append implements sheet.Service.
func (s *SheetServiceImpl) Append(ctx context.Context, req sheet.AppendRequest) (sheet.AppendResponse, error) {
	if err := req.Validate(); err != nil {
		return sheet.AppendResponse{}, err
	}

	updated, err := s.store.Append(ctx, req.SheetID, req.Range, req.NewRow)
	if err != nil {
		slog.Error("Failed to append row", "sheet_id", req.SheetID, "range", req.Range, "error", err)
		return sheet.AppendResponse{}, err
	}

	if msg, ok := attendance.AppendedRowMessage(req.Nickname, req.NewRow); ok {
		notifysvc.BestEffort(ctx, s.notifier, msg)
	}

	return sheet.AppendResponse{UpdatedRows: updated}, nil
}
