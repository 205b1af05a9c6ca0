package sheet

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/notification"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet/sheettest"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorder(sent *[]notification.Message, err error) notification.Notifier {
	return notification.NotifierFunc(func(ctx context.Context, msg notification.Message) error {
		*sent = append(*sent, msg)
		return err
	})
}

func TestGet(t *testing.T) {
	store := sheettest.NewStore()
	store.Seed("s1", "employees", [][]string{
		{"employee_id", "nickname"},
		{"E1", "Chai"},
		{"E2"},
	})
	svc := NewSheetService(store, nil)

	records, err := svc.Get(context.Background(), sheet.GetRequest{Sheet: &sheet.Ref{SheetID: "s1", Range: "employees!A:B"}})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Chai", records[0].Get("nickname"))
	assert.Equal(t, "", records[1].Get("nickname"))
}

func TestGet_HeaderOnlyIsEmpty(t *testing.T) {
	store := sheettest.NewStore()
	store.Seed("s1", "attendance", [][]string{{"attendance_id", "date"}})
	svc := NewSheetService(store, nil)

	records, err := svc.Get(context.Background(), sheet.GetRequest{Sheet: &sheet.Ref{SheetID: "s1", Range: "attendance!A:H"}})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestGet_ValidationBeforeNetwork(t *testing.T) {
	store := sheettest.NewStore()
	svc := NewSheetService(store, nil)

	_, err := svc.Get(context.Background(), sheet.GetRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, 0, store.Calls())
}

func TestGet_UpstreamError(t *testing.T) {
	store := sheettest.NewStore()
	store.GetErr = errors.New("googleapi: Error 403: The caller does not have permission")
	svc := NewSheetService(store, nil)

	_, err := svc.Get(context.Background(), sheet.GetRequest{Sheet: &sheet.Ref{SheetID: "s1", Range: "x!A:B"}})
	assert.EqualError(t, err, "googleapi: Error 403: The caller does not have permission")
}

func TestAppend_NotifiesCheckIn(t *testing.T) {
	store := sheettest.NewStore()
	var sent []notification.Message
	svc := NewSheetService(store, recorder(&sent, nil))

	resp, err := svc.Append(context.Background(), sheet.AppendRequest{
		SheetID:  "s1",
		Range:    "attendance!A:H",
		NewRow:   sheet.Cells{"a1", "", "E1", "2024-01-15", "09:00:00", "", "checked_in", ""},
		Nickname: "Chai",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.UpdatedRows)

	require.Len(t, store.Appends, 1)
	assert.Equal(t, "attendance!A:H", store.Appends[0].Range)

	require.Len(t, sent, 1)
	assert.Equal(t, "Check-in: Chai at 09:00:00", sent[0].Text)
}

func TestAppend_NotificationFailureIsSwallowed(t *testing.T) {
	store := sheettest.NewStore()
	var sent []notification.Message
	svc := NewSheetService(store, recorder(&sent, errors.New("pushover down")))

	_, err := svc.Append(context.Background(), sheet.AppendRequest{
		SheetID: "s1",
		Range:   "employee_leaves!A:I",
		NewRow:  sheet.Cells{"l1", "", "E1", "2024-01-20", "1 วัน", "1", "trip", "", "FALSE"},
	})
	require.NoError(t, err)
	assert.Len(t, sent, 1)
}

func TestAppend_MissingRow(t *testing.T) {
	store := sheettest.NewStore()
	svc := NewSheetService(store, nil)

	_, err := svc.Append(context.Background(), sheet.AppendRequest{SheetID: "s1", Range: "x!A:B"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, 0, store.Calls())
}
