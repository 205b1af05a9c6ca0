package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/member"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/notification"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/session"
	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet/sheettest"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/jwt"
	serviceAuth "github.com/cmlabs-hris/liff-attendance-go/internal/service/auth"
	sheetService "github.com/cmlabs-hris/liff-attendance-go/internal/service/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMemberService struct {
	members map[string]member.Member
}

func (s *stubMemberService) Signup(ctx context.Context, user member.LineUser, req member.SignupRequest) (member.Member, error) {
	m := member.Member{Name: req.Name, Phone: req.Phone, DisplayName: user.DisplayName, UserID: user.UserID, UserRole: "member"}
	s.members[user.UserID] = m
	return m, nil
}

func (s *stubMemberService) GetByUserID(ctx context.Context, userID string) (member.Member, error) {
	m, ok := s.members[userID]
	if !ok {
		return member.Member{}, member.ErrMemberNotFound
	}
	return m, nil
}

func (s *stubMemberService) History(ctx context.Context, userID string) ([]member.Bill, error) {
	return []member.Bill{}, nil
}

type stubBootstrapService struct{}

func (stubBootstrapService) Bootstrap(ctx context.Context, user member.LineUser) (*session.AppState, error) {
	state := session.NewAppState()
	state.SetUser(user)
	return state, nil
}

type testServer struct {
	*httptest.Server
	store *sheettest.Store
	sent  []notification.Message
	push  error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{store: sheettest.NewStore()}
	notifier := notification.NotifierFunc(func(ctx context.Context, msg notification.Message) error {
		ts.sent = append(ts.sent, msg)
		return ts.push
	})

	jwtService := jwt.NewJWTService("test-secret", "1h")
	members := &stubMemberService{members: map[string]member.Member{}}

	router := NewRouter(RouterConfig{Env: "test", FrontendURL: "http://localhost:3000"}, jwtService, Handlers{
		Auth:         NewAuthHandler(serviceAuth.NewAuthService(jwtService)),
		Sheet:        NewSheetHandler(sheetService.NewSheetService(ts.store, notifier)),
		Attendance:   newCheckOutHandler(ts.store),
		Leave:        NewLeaveHandler(nil),
		Member:       NewMemberHandler(members),
		Notification: NewNotificationHandler(notifier),
		Bootstrap:    NewBootstrapHandler(stubBootstrapService{}),
	})
	ts.Server = httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	resp, env := ts.do(t, http.MethodPost, "/api/v1/auth/liff", "", `{"userId":"U123","displayName":"Somchai"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &token))
	require.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	return token.AccessToken
}

func TestRouter_Session(t *testing.T) {
	ts := newTestServer(t)

	t.Run("login requires a user id", func(t *testing.T) {
		resp, _ := ts.do(t, http.MethodPost, "/api/v1/auth/liff", "", `{"displayName":"Somchai"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		resp, _ := ts.do(t, http.MethodGet, "/api/v1/members/me", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("claims identify the LINE user", func(t *testing.T) {
		token := ts.login(t)

		resp, _ := ts.do(t, http.MethodGet, "/api/v1/members/me", token, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, env := ts.do(t, http.MethodPost, "/api/v1/members", token, `{"name":"Somchai Jaidee","phone":"0812345678"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var created member.Member
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.Equal(t, "U123", created.UserID)
		assert.Equal(t, "Somchai", created.DisplayName)

		resp, _ = ts.do(t, http.MethodGet, "/api/v1/members/me", token, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, env = ts.do(t, http.MethodGet, "/api/v1/me/bootstrap", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var state struct {
			User member.LineUser `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &state))
		assert.Equal(t, "U123", state.User.UserID)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		token := ts.login(t)

		resp, _ := ts.do(t, http.MethodPost, "/api/v1/auth/logout", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = ts.do(t, http.MethodGet, "/api/v1/members/me", token, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRouter_Sheets(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)
	ts.store.Seed("s1", "userLine", [][]string{
		{"created_at", "name", "phone", "displayName", "userId", "note", "userRole"},
		{"2024-01-01", "Somchai", "0812345678", "Som", "U123", "", "member"},
	})

	t.Run("get returns header keyed records", func(t *testing.T) {
		resp, env := ts.do(t, http.MethodPost, "/api/v1/sheets/get", token, `{"sheet":{"sheetId":"s1","range":"userLine!A:G"}}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var records []map[string]string
		require.NoError(t, json.Unmarshal(env.Data, &records))
		require.Len(t, records, 1)
		assert.Equal(t, "U123", records[0]["userId"])
		assert.Equal(t, "0812345678", records[0]["phone"])
	})

	t.Run("get without sheet is a validation error", func(t *testing.T) {
		resp, _ := ts.do(t, http.MethodPost, "/api/v1/sheets/get", token, `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("add appends and reports updated rows", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/sheets/add",
			strings.NewReader(`{"sheetId":"s1","range":"userLine!A:G","newRow":["2024-02-01","Malee",812345679,"Mal","U456","",null]}`))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result appendResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.Success)
		assert.Equal(t, int64(1), result.UpdatedRows)

		rows := ts.store.Rows("s1", "userLine")
		require.Len(t, rows, 3)
		assert.Equal(t, "U456", rows[2][4])
	})

	t.Run("upstream failure is a 500 with the raw message", func(t *testing.T) {
		ts.store.GetErr = errors.New("googleapi: Error 403: The caller does not have permission")
		defer func() { ts.store.GetErr = nil }()

		resp, env := ts.do(t, http.MethodPost, "/api/v1/sheets/get", token, `{"sheet":{"sheetId":"s1","range":"userLine!A:G"}}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Equal(t, "googleapi: Error 403: The caller does not have permission", env.Error.Message)
	})
}

func TestRouter_Push(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	t.Run("default title", func(t *testing.T) {
		ts.sent = nil
		resp, _ := ts.do(t, http.MethodPost, "/api/v1/notifications/push", token, `{"message":"hello"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, ts.sent, 1)
		assert.Equal(t, notification.DefaultTitle, ts.sent[0].Title)
		assert.Equal(t, notification.AudienceStaff, ts.sent[0].Audience)
	})

	t.Run("legacy token selects the admin audience", func(t *testing.T) {
		ts.sent = nil
		resp, _ := ts.do(t, http.MethodPost, "/api/v1/notifications/push", token, `{"message":"hello","title":"Leave","token":"abc"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, ts.sent, 1)
		assert.Equal(t, "Leave", ts.sent[0].Title)
		assert.Equal(t, notification.AudienceAdmin, ts.sent[0].Audience)
	})

	t.Run("missing message", func(t *testing.T) {
		ts.sent = nil
		resp, _ := ts.do(t, http.MethodPost, "/api/v1/notifications/push", token, `{"title":"x"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Empty(t, ts.sent)
	})

	t.Run("delivery failure is returned", func(t *testing.T) {
		ts.push = errors.New("pushover: request failed with status 400")
		defer func() { ts.push = nil }()

		resp, env := ts.do(t, http.MethodPost, "/api/v1/notifications/push", token, `{"message":"hello"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Equal(t, "pushover: request failed with status 400", env.Error.Message)
	})
}
