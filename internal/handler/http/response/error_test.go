package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/member"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/table"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        validator.ValidationErrors{{Field: "workHours", Message: "workHours is required"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "no data",
			err:        attendance.ErrNoAttendanceData,
			wantStatus: http.StatusNotFound,
			wantMsg:    "No data",
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("checkout: %w", attendance.ErrCheckInNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "already checked in",
			err:        attendance.ErrAlreadyCheckedIn,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "duplicate phone",
			err:        member.ErrPhoneExists,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "table missing",
			err:        table.ErrTableNotConfigured,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "upstream",
			err:        errors.New("googleapi: Error 403: The caller does not have permission"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "googleapi: Error 403: The caller does not have permission",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body.Error.Code)
			}
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body.Error.Message)
			}
		})
	}
}
