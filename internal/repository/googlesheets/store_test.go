package googlesheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type capturedRequest struct {
	method string
	path   string
	query  map[string]string
	values [][]interface{}
}

func newTestStore(t *testing.T, handler func(w http.ResponseWriter, req capturedRequest)) (*storeImpl, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := capturedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query: map[string]string{
				"valueInputOption": r.URL.Query().Get("valueInputOption"),
				"insertDataOption": r.URL.Query().Get("insertDataOption"),
			},
		}
		if r.Body != nil && r.Method != http.MethodGet {
			var body struct {
				Values [][]interface{} `json:"values"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			c.values = body.Values
		}
		captured = append(captured, c)
		w.Header().Set("Content-Type", "application/json")
		handler(w, c)
	}))
	t.Cleanup(srv.Close)

	store, err := NewStoreWithOptions(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return store.(*storeImpl), &captured
}

func TestStore_Get(t *testing.T) {
	store, captured := newTestStore(t, func(w http.ResponseWriter, req capturedRequest) {
		_, _ = w.Write([]byte(`{"range":"attendance!A1:H2","majorDimension":"ROWS","values":[["employee_id","date"],["E1","2024-01-01"]]}`))
	})

	values, err := store.Get(context.Background(), "sid", "attendance!A:H")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"employee_id", "date"}, {"E1", "2024-01-01"}}, values)

	require.Len(t, *captured, 1)
	assert.Equal(t, http.MethodGet, (*captured)[0].method)
	assert.True(t, strings.HasPrefix((*captured)[0].path, "/v4/spreadsheets/sid/values/"))
}

func TestStore_Get_EmptySheet(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, req capturedRequest) {
		_, _ = w.Write([]byte(`{"range":"attendance!A1:H1","majorDimension":"ROWS"}`))
	})

	values, err := store.Get(context.Background(), "sid", "attendance!A:H")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestStore_Append(t *testing.T) {
	store, captured := newTestStore(t, func(w http.ResponseWriter, req capturedRequest) {
		_, _ = w.Write([]byte(`{"spreadsheetId":"sid","updates":{"updatedRows":1}}`))
	})

	n, err := store.Append(context.Background(), "sid", "attendance!A:H", []string{"", "", "E1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.True(t, strings.HasSuffix(req.path, ":append"))
	assert.Equal(t, "USER_ENTERED", req.query["valueInputOption"])
	assert.Equal(t, "INSERT_ROWS", req.query["insertDataOption"])
	assert.Equal(t, [][]interface{}{{"", "", "E1"}}, req.values)
}

func TestStore_Update(t *testing.T) {
	store, captured := newTestStore(t, func(w http.ResponseWriter, req capturedRequest) {
		_, _ = w.Write([]byte(`{"spreadsheetId":"sid","updatedRows":1}`))
	})

	err := store.Update(context.Background(), "sid", "attendance!A2:H2", []string{"a", "b"})
	require.NoError(t, err)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "USER_ENTERED", req.query["valueInputOption"])
	assert.Equal(t, [][]interface{}{{"a", "b"}}, req.values)
}

func TestStore_UpstreamError(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, req capturedRequest) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	})

	_, err := store.Get(context.Background(), "sid", "attendance!A:H")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read attendance!A:H")
}

func TestNewStore_InvalidCredentials(t *testing.T) {
	_, err := NewStore(context.Background(), "%%%not-base64")
	assert.Error(t, err)
}
