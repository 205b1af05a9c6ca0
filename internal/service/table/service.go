package table

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/table"
)

type TableServiceImpl struct {
	store       sheet.Store
	configSheet string
	configRange string
}

func NewTableService(store sheet.Store, configSheetID, configRange string) table.TableService {
	return &TableServiceImpl{
		store:       store,
		configSheet: configSheetID,
		configRange: configRange,
	}
}

// Load implements table.TableService.
func (s *TableServiceImpl) Load(ctx context.Context) (table.Registry, error) {
	values, err := s.store.Get(ctx, s.configSheet, s.configRange)
	if err != nil {
		slog.Error("Failed to load table config", "sheet_id", s.configSheet, "error", err)
		return nil, err
	}
	return table.Parse(sheet.ToRecords(values)), nil
}
