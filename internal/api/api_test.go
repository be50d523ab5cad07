package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intakebot/internal/config"
	"intakebot/internal/constants"
	"intakebot/internal/handlers"
	"intakebot/internal/handlers/handlerstest"
	"intakebot/internal/session"
)

const (
	testToken       = "123456:test-token"
	testOperator    = int64(100)
	testRequesterID = int64(42)
	testStrangerID  = int64(43)
	testBotUsername = "intake_bot"
)

type testEnv struct {
	store     *handlerstest.MemoryStore
	messenger *handlerstest.RecordingMessenger
	router    http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		TelegramToken:  testToken,
		OperatorChatID: testOperator,
		MinBudget:      constants.DEFAULT_MINBUDGET,
		BotUsername:    testBotUsername,
	}
	store := handlerstest.NewMemoryStore()
	messenger := &handlerstest.RecordingMessenger{}
	bot := handlers.NewBotHandler(handlers.HandlerDependencies{
		Config:         cfg,
		Messenger:      messenger,
		SessionManager: session.NewSessionManager(),
		Store:          store,
	})
	router := NewRouter(ApiDependencies{
		Config:    cfg,
		SecretKey: testToken,
		Store:     store,
		Bot:       bot,
	})
	return &testEnv{store: store, messenger: messenger, router: router}
}

func initDataFor(userID int64, secret string) string {
	q := url.Values{}
	q.Set("auth_date", "1760000000")
	q.Set("user", fmt.Sprintf(`{"id":%d,"first_name":"Op","username":"operator"}`, userID))
	q.Set("hash", signInitData(q, secret))
	return q.Encode()
}

func (e *testEnv) do(t *testing.T, method, path string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if userID != 0 {
		req.Header.Set("X-Telegram-Auth", initDataFor(userID, testToken))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decode(t, rec)["status"])
}

func TestBotQRCode(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/bot-qr", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestAdminAuth(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "forged hash", header: initDataFor(testOperator, "wrong-secret"), wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "%%%", wantStatus: http.StatusUnauthorized},
		{name: "not operator", header: initDataFor(testStrangerID, testToken), wantStatus: http.StatusForbidden},
		{name: "operator", header: initDataFor(testOperator, testToken), wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.header != "" {
				req.Header.Set("X-Telegram-Auth", tt.header)
			}
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.store.CreateOrder(testRequesterID, "alice", "Al", "task one")
	require.NoError(t, err)
	id2, err := env.store.CreateOrder(testRequesterID, "alice", "Bob", "task two")
	require.NoError(t, err)
	_, err = env.store.MarkDone(id2)
	require.NoError(t, err)

	tests := []struct {
		query     string
		wantCount int
	}{
		{query: "", wantCount: 1},
		{query: "?filter=new", wantCount: 1},
		{query: "?filter=all", wantCount: 2},
		{query: "?filter=done", wantCount: 1},
		{query: "?filter=work", wantCount: 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/admin/orders"+tt.query, testOperator)
			require.Equal(t, http.StatusOK, rec.Code)
			data, _ := decode(t, rec)["data"].([]any)
			assert.Len(t, data, tt.wantCount)
		})
	}

	rec := env.do(t, http.MethodGet, "/api/admin/orders?filter=archived", testOperator)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder(t *testing.T) {
	env := newTestEnv(t)
	id, err := env.store.CreateOrder(testRequesterID, "alice", "Al", "task one")
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/admin/orders/%d", id), testOperator)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Al", data["name"])
	assert.Equal(t, constants.STATUS_NEW, data["status"])

	rec = env.do(t, http.MethodGet, "/api/admin/orders/999", testOperator)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/orders/9999999999", testOperator)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/orders/abc", testOperator)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitions(t *testing.T) {
	env := newTestEnv(t)
	id, err := env.store.CreateOrder(testRequesterID, "alice", "Al", "task one")
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/admin/orders/%d/take", id), testOperator)
	require.Equal(t, http.StatusOK, rec.Code)
	order, _, err := env.store.GetOrder(id)
	require.NoError(t, err)
	assert.Equal(t, constants.STATUS_INPROGRESS, order.Status)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/admin/orders/%d/done", id), testOperator)
	require.Equal(t, http.StatusOK, rec.Code)
	order, _, err = env.store.GetOrder(id)
	require.NoError(t, err)
	assert.Equal(t, constants.STATUS_DONE, order.Status)

	assert.Equal(t, []string{constants.MsgRequesterInProgress, constants.MsgRequesterDone}, env.messenger.TextsTo(testRequesterID))

	rec = env.do(t, http.MethodPost, "/api/admin/orders/999/done", testOperator)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/admin/orders/%d/done", id), testStrangerID)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTransition_NotificationFailureStillSucceeds(t *testing.T) {
	env := newTestEnv(t)
	id, err := env.store.CreateOrder(testRequesterID, "alice", "Al", "task one")
	require.NoError(t, err)
	env.messenger.FailChatID = testRequesterID

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/admin/orders/%d/take", id), testOperator)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["message"])
}

func TestExportOrders(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.store.CreateOrder(testRequesterID, "alice", "Al", "task one")
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/admin/orders/export", testOperator)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}
