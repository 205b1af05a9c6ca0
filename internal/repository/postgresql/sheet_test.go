package postgresql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/sheetrange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceColumns(t *testing.T) {
	r, _ := sheetrange.Parse("attendance!B:D")
	assert.Equal(t, []string{"b", "c", "d"}, sliceColumns([]string{"a", "b", "c", "d", "e"}, r))
	assert.Equal(t, []string{"b"}, sliceColumns([]string{"a", "b"}, r))
	assert.Equal(t, []string{}, sliceColumns([]string{"a"}, r))
}

func TestPlaceColumns(t *testing.T) {
	r, _ := sheetrange.Parse("attendance!A5:H5")
	assert.Equal(t, []string{"x", "y", "c"}, placeColumns([]string{"a", "b", "c"}, []string{"x", "y"}, r))

	r, _ = sheetrange.Parse("attendance!C:D")
	assert.Equal(t, []string{"", "", "x", "y"}, placeColumns(nil, []string{"x", "y"}, r))
}

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.NewPostgreSQLDB(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func TestSheetStore_AppendGetUpdate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := NewSheetStore(db)

	sheetID := fmt.Sprintf("test-sheet-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM sheet_rows WHERE spreadsheet_id = $1`, sheetID)
	})

	values, err := store.Get(ctx, sheetID, "attendance!A:H")
	require.NoError(t, err)
	assert.Empty(t, values)

	header := []string{"attendance_id", "created_at", "employee_id", "date", "checkIn", "checkOut", "status", "workHours"}
	_, err = store.Append(ctx, sheetID, "attendance!A:H", header)
	require.NoError(t, err)
	n, err := store.Append(ctx, sheetID, "attendance!A:H", []string{"", "", "E1", "2024-01-01", "09:00:00", "", "checked_in", ""})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, store.Update(ctx, sheetID, "attendance!F2:H2", []string{"18:00:00", "completed", "9:00"}))

	values, err = store.Get(ctx, sheetID, "attendance!A:H")
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, []string{"", "", "E1", "2024-01-01", "09:00:00", "18:00:00", "completed", "9:00"}, values[1])
}
