package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tutorq/internal/auth"
	"tutorq/internal/queue"
	"tutorq/internal/response"
	"tutorq/internal/storage"
	"tutorq/internal/tasks"
	"tutorq/internal/ws"
)

const testGuild = "g1"

type stubRooms struct {
	mu      sync.Mutex
	n       int
	fail    bool
	deleted []string
}

func (r *stubRooms) CreatePrivateRoom(context.Context, string, string, []string, string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return "", errors.New("missing permissions")
	}
	r.n++
	return fmt.Sprintf("room-%d", r.n), nil
}

func (r *stubRooms) MovePresence(context.Context, string, string, string) error { return nil }

func (r *stubRooms) CategoryOf(context.Context, string, string) (string, error) { return "", nil }

func (r *stubRooms) DeleteRoom(_ context.Context, _, room string) error {
	r.mu.Lock()
	r.deleted = append(r.deleted, room)
	r.mu.Unlock()
	return nil
}

func (r *stubRooms) Disconnect(context.Context, string, string, string) error { return nil }

type testServer struct {
	*httptest.Server
	svc    *queue.Service
	hub    *ws.Hub
	rooms  *stubRooms
	tokens *auth.Tokens
}

// Monday 2024-01-01 10:00 UTC
var testNow = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub()
	go hub.Run(ctx)

	ts := &testServer{
		hub:    hub,
		rooms:  &stubRooms{},
		tokens: auth.NewTokens("access-secret", "refresh-secret"),
	}
	ts.svc = queue.New(queue.Options{
		Store:    storage.NewMemoryStore(),
		Rooms:    ts.rooms,
		Events:   hub,
		Clock:    tasks.NewFakeClock(testNow),
		Location: time.UTC,
	})

	h := New(Options{
		Service:       ts.svc,
		Hub:           hub,
		Tokens:        ts.tokens,
		AdminUser:     "admin",
		AdminPassHash: string(hash),
	})
	r := gin.New()
	h.RegisterRoutes(r, auth.AuthMiddleware(ts.tokens))
	ts.Server = httptest.NewServer(r)

	t.Cleanup(func() {
		ts.Server.Close()
		ts.svc.Wait()
		cancel()
	})
	return ts
}

func (ts *testServer) token(t *testing.T) string {
	t.Helper()
	access, _, err := ts.tokens.Pair("admin")
	require.NoError(t, err)
	return access
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ts.token(t))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decode(t *testing.T, res *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
}

func queuePath(name, suffix string) string {
	return "/api/guilds/" + testGuild + "/queues/" + name + suffix
}

func (ts *testServer) createQueue(t *testing.T, name string) response.QueueResponse {
	t.Helper()
	res := ts.do(t, http.MethodPost, "/api/guilds/"+testGuild+"/queues", CreateQueueRequest{Name: name})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ошибка создания очереди")
	var q response.QueueResponse
	decode(t, res, &q)
	return q
}

func TestLoginAndRefresh(t *testing.T) {
	ts := setupTestServer(t)

	body, _ := json.Marshal(LoginRequest{Username: "admin", Password: "wrong"})
	res, err := http.Post(ts.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "Неверный пароль должен отклоняться")

	body, _ = json.Marshal(LoginRequest{Username: "admin", Password: "secret"})
	res, err = http.Post(ts.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var pair response.TokenResponse
	decode(t, res, &pair)
	assert.NotEmpty(t, pair.AccessToken)

	body, _ = json.Marshal(RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	res2, err := http.Post(ts.URL+"/auth/refresh", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer res2.Body.Close()
	assert.Equal(t, http.StatusOK, res2.StatusCode)

	// access токен не подходит для обновления
	body, _ = json.Marshal(RefreshTokenRequest{RefreshToken: pair.AccessToken})
	res3, err := http.Post(ts.URL+"/auth/refresh", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer res3.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res3.StatusCode)
}

func TestAPIRequiresToken(t *testing.T) {
	ts := setupTestServer(t)

	res, err := http.Get(ts.URL + "/api/guilds/g1/queues")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestQueueMembershipFlow(t *testing.T) {
	ts := setupTestServer(t)
	ts.createQueue(t, "help")

	res := ts.do(t, http.MethodPost, queuePath("help", "/join"), MemberRequest{UserID: "alice"})
	require.Equal(t, http.StatusOK, res.StatusCode, "Пользователь 1 не смог присоединиться к очереди")
	res = ts.do(t, http.MethodPost, queuePath("help", "/join"), MemberRequest{UserID: "bob"})
	require.Equal(t, http.StatusOK, res.StatusCode, "Пользователь 2 не смог присоединиться к очереди")
	var pos response.PositionResponse
	decode(t, res, &pos)
	assert.Equal(t, 2, pos.Position)

	res = ts.do(t, http.MethodPost, queuePath("help", "/join"), MemberRequest{UserID: "bob"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res = ts.do(t, http.MethodGet, queuePath("help", "/members"), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var members []response.MemberResponse
	decode(t, res, &members)
	require.Len(t, members, 2, "Количество участников в очереди неверное")
	assert.Equal(t, "alice", members[0].UserID)

	res = ts.do(t, http.MethodPost, queuePath("help", "/leave"), MemberRequest{UserID: "alice"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = ts.do(t, http.MethodGet, queuePath("help", "/position/bob"), nil)
	decode(t, res, &pos)
	assert.Equal(t, 1, pos.Position)

	res = ts.do(t, http.MethodGet, "/api/guilds/g1/users/bob/queues", nil)
	var mine []response.UserQueueResponse
	decode(t, res, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "help", mine[0].Queue.Name)
}

func TestLockedQueueRejectsJoin(t *testing.T) {
	ts := setupTestServer(t)
	ts.createQueue(t, "help")

	res := ts.do(t, http.MethodPost, queuePath("help", "/lock"), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res = ts.do(t, http.MethodPost, queuePath("help", "/lock"), nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res = ts.do(t, http.MethodPost, queuePath("help", "/join"), MemberRequest{UserID: "alice"})
	assert.Equal(t, http.StatusLocked, res.StatusCode)
	var e response.ErrorResponse
	decode(t, res, &e)
	assert.Equal(t, "QUEUE_LOCKED", e.Code)
}

func TestErrorStatuses(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"unknown queue", http.MethodGet, queuePath("nope", ""), nil, http.StatusNotFound, "QUEUE_NOT_FOUND"},
		{"missing body field", http.MethodPost, "/api/guilds/g1/queues", map[string]string{}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad day", http.MethodPut, queuePath("nope", "/schedules/someday"), ScheduleRequest{StartTime: "08:00", EndTime: "09:00"}, http.StatusBadRequest, "INVALID_DAY"},
		{"no session", http.MethodPost, "/api/guilds/g1/sessions/tutor/pick", nil, http.StatusNotFound, "NO_ACTIVE_SESSION"},
		{"end without session", http.MethodDelete, "/api/guilds/g1/sessions/tutor", nil, http.StatusNotFound, "NO_ACTIVE_SESSION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ts.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, res.StatusCode)
			var e response.ErrorResponse
			decode(t, res, &e)
			assert.Equal(t, tt.code, e.Code)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, statusFor(queue.ErrRoomCreation))
	assert.Equal(t, http.StatusForbidden, statusFor(queue.ErrTutorCannotJoinQueue))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, statusFor(&queue.Error{Kind: queue.KindOperationFailed, Code: "STORE_ERROR"}))
}

func TestScheduleEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	ts.createQueue(t, "help")

	res := ts.do(t, http.MethodPut, queuePath("help", "/schedules/monday"), ScheduleRequest{StartTime: "08:00", EndTime: "09:00"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res = ts.do(t, http.MethodPut, queuePath("help", "/schedules/1"), ScheduleRequest{StartTime: "09:00", EndTime: "08:00"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	shift := 900
	res = ts.do(t, http.MethodPut, queuePath("help", "/schedule-settings"), ScheduleSettingsRequest{ShiftMinutes: &shift})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// 10:00 в понедельник вне окна 08:00-09:00
	enabled := true
	res = ts.do(t, http.MethodPut, queuePath("help", "/schedule-settings"), ScheduleSettingsRequest{Enabled: &enabled})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var q response.QueueResponse
	decode(t, res, &q)
	assert.True(t, q.ScheduleEnabled)
	assert.True(t, q.IsLocked)

	res = ts.do(t, http.MethodGet, queuePath("help", "/schedules"), nil)
	var windows []response.ScheduleResponse
	decode(t, res, &windows)
	require.Len(t, windows, 1)
	assert.Equal(t, 1, windows[0].DayOfWeek)

	res = ts.do(t, http.MethodDelete, queuePath("help", "/schedules/mon"), nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	res = ts.do(t, http.MethodDelete, queuePath("help", "/schedules/mon"), nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = ts.do(t, http.MethodPost, "/api/schedules/evaluate", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestSessionPickFlow(t *testing.T) {
	ts := setupTestServer(t)
	ts.createQueue(t, "help")
	ts.do(t, http.MethodPost, queuePath("help", "/join"), MemberRequest{UserID: "alice"})
	ts.do(t, http.MethodPost, queuePath("help", "/join"), MemberRequest{UserID: "bob"})

	res := ts.do(t, http.MethodPost, "/api/guilds/g1/sessions", StartSessionRequest{Queue: "help", TutorID: "alice"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "Участник очереди не может начать сессию")

	res = ts.do(t, http.MethodPost, "/api/guilds/g1/sessions", StartSessionRequest{Queue: "help", TutorID: "tina"})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var sess response.SessionResponse
	decode(t, res, &sess)

	res = ts.do(t, http.MethodPost, "/api/guilds/g1/sessions/tina/pick", PickRequest{StudentID: "bob"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var pick response.PickResponse
	decode(t, res, &pick)
	assert.Equal(t, sess.ID, pick.SessionID)
	assert.Equal(t, "bob", pick.StudentID)
	assert.Equal(t, "room-1", pick.Room)

	res = ts.do(t, http.MethodPost, "/api/guilds/g1/sessions/tina/pick", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	decode(t, res, &pick)
	assert.Equal(t, "alice", pick.StudentID)

	res = ts.do(t, http.MethodPost, "/api/guilds/g1/sessions/tina/pick", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = ts.do(t, http.MethodDelete, "/api/guilds/g1/sessions/tina", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	decode(t, res, &sess)
	assert.NotNil(t, sess.EndTime)

	ts.svc.Wait()
	ts.rooms.mu.Lock()
	defer ts.rooms.mu.Unlock()
	assert.ElementsMatch(t, []string{"room-1", "room-2"}, ts.rooms.deleted)
}

func TestPickRoomFailure(t *testing.T) {
	ts := setupTestServer(t)
	ts.createQueue(t, "help")
	ts.do(t, http.MethodPost, queuePath("help", "/join"), MemberRequest{UserID: "bob"})
	ts.do(t, http.MethodPost, "/api/guilds/g1/sessions", StartSessionRequest{Queue: "help", TutorID: "tina"})
	ts.rooms.fail = true

	res := ts.do(t, http.MethodPost, "/api/guilds/g1/sessions/tina/pick", nil)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)

	res = ts.do(t, http.MethodGet, queuePath("help", "/position/bob"), nil)
	var pos response.PositionResponse
	decode(t, res, &pos)
	assert.Equal(t, 1, pos.Position, "Студент должен остаться в очереди")
}

func TestQueueWebSocket(t *testing.T) {
	ts := setupTestServer(t)
	q := ts.createQueue(t, "help")

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + queuePath("help", "/ws") + "?token=" + ts.token(t)
	dialer := websocket.Dialer{}
	wsConn, _, err := dialer.Dial(wsURL, nil)
	require.NoError(t, err, "Ошибка подключения к WS")
	defer wsConn.Close()

	assert.Eventually(t, func() bool { return ts.hub.Subscribers(q.ID) == 1 }, time.Second, 10*time.Millisecond)

	res := ts.do(t, http.MethodPost, queuePath("help", "/join"), MemberRequest{UserID: "alice"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.NoError(t, wsConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := wsConn.ReadMessage()
	require.NoError(t, err, "Ошибка чтения WS сообщения")

	var ev queue.Event
	require.NoError(t, json.Unmarshal(msg, &ev), "Ошибка разбора WS сообщения")
	assert.Equal(t, queue.EventMemberJoined, ev.Type)
	assert.Equal(t, "alice", ev.UserID)
}
