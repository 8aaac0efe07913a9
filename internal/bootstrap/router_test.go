package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/campulist/campulist/internal/bootstrap"
	"github.com/campulist/campulist/internal/config"
	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/campulist/campulist/internal/pkg/logger"
	pkgWebsocket "github.com/campulist/campulist/internal/pkg/websocket"
	"github.com/campulist/campulist/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router http.Handler
	deps   *bootstrap.Dependencies
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Session.Secret = "router-test-secret"
	cfg.Session.TTL = "1h"
	cfg.Session.Issuer = "campulist"
	cfg.Session.CookieName = "campulist_session"
	cfg.Storage.Provider = config.ProviderMemory
	return cfg
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := testConfig()
	deps, err := bootstrap.BuildDependencies(cfg, nil, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go deps.Hub.Run(ctx)

	return &testApp{router: bootstrap.SetupRouter(cfg, deps, logger.Nop()), deps: deps}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(t *testing.T, input dto.MockLoginInput) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/session/mock-login", "", input)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[dto.LoginResponse](t, w)
	require.True(t, res.OK)
	require.NotEmpty(t, res.Data.Token)
	return res.Data.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) dto.Result[T] {
	t.Helper()
	var res dto.Result[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, kind apperrors.Kind) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	res := decode[any](t, w)
	assert.False(t, res.OK)
	require.NotNil(t, res.Error)
	assert.Equal(t, kind, res.Error.Code)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[dto.HealthResponse](t, w)
	assert.Equal(t, "ok", res.Data.Status)
	assert.Equal(t, config.ProviderMemory, res.Data.Provider.EffectiveProvider)
	assert.True(t, res.Data.Provider.Ready)
}

func TestDefaultSessionWithoutToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[models.Session](t, w)
	assert.Equal(t, seed.UserID("kaist-main", "undergrad"), res.Data.UserID)
	assert.Equal(t, models.RoleStudent, res.Data.Role)
	assert.Equal(t, seed.CampusKAIST, res.Data.CampusID)
}

func TestMockLoginIssuesToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/v1/session/mock-login", "", dto.MockLoginInput{Role: models.RoleAdmin})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode[dto.LoginResponse](t, w)
	assert.Equal(t, seed.UserID("kaist-main", "admin"), login.Data.Session.UserID)
	assert.NotEmpty(t, login.Data.ExpiresAt)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "campulist_session" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, login.Data.Token, cookie.Value)

	w = app.do(t, http.MethodGet, "/api/v1/session", login.Data.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleAdmin, decode[models.Session](t, w).Data.Role)

	// The cookie alone carries the session too
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleAdmin, decode[models.User](t, rec).Data.Role)
}

func TestMockLoginErrors(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/v1/session/mock-login", "", map[string]string{"role": "janitor"})
	requireError(t, w, http.StatusBadRequest, apperrors.KindBadRequest)

	w = app.do(t, http.MethodPost, "/api/v1/session/mock-login", "", map[string]string{"role": "admin", "campus_id": seed.CampusWoosong})
	requireError(t, w, http.StatusNotFound, apperrors.KindNotFound)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/session", "not-a-jwt", nil)
	requireError(t, w, http.StatusUnauthorized, apperrors.KindUnauthorized)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	req.Header.Set("Authorization", "Basic abc def")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	requireError(t, rec, http.StatusUnauthorized, apperrors.KindUnauthorized)

	// Public endpoints ignore the token
	w = app.do(t, http.MethodGet, "/api/v1/campuses", "not-a-jwt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCampusesAndCategories(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/campuses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Campus](t, w).Data, 6)

	w = app.do(t, http.MethodGet, "/api/v1/session/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		[]models.PostCategory{models.CategoryMarket, models.CategoryHousing, models.CategoryJobs},
		decode[[]models.PostCategory](t, w).Data)
}

func TestPostLifecycle(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/v1/posts", "", map[string]any{
		"category":                "market",
		"title":                   "Desk chair",
		"body":                    "Sturdy chair, pick up at the dorm.",
		"price_krw":               12000,
		"show_affiliation_prefix": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.PostResponse](t, w)
	require.NotNil(t, created.Data.Post)
	assert.Equal(t, "[카이스트 대전 본원][학부생] Desk chair", created.Data.DisplayTitle)
	id := created.Data.ID

	w = app.do(t, http.MethodGet, "/api/v1/posts/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[dto.PostResponse](t, w).Data.ViewCount)

	w = app.do(t, http.MethodPatch, "/api/v1/posts/"+id, "", map[string]any{"price_krw": nil, "status": "reserved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.PostResponse](t, w)
	assert.Nil(t, updated.Data.PriceKRW)
	assert.Equal(t, models.PostReserved, updated.Data.Status)

	w = app.do(t, http.MethodGet, "/api/v1/posts?search=desk+chair&status=reserved", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode[dto.ListResult[dto.PostResponse]](t, w)
	require.Len(t, list.Data.Items, 1)
	assert.Equal(t, id, list.Data.Items[0].ID)

	w = app.do(t, http.MethodDelete, "/api/v1/posts/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.DeleteResponse](t, w).Data.Deleted)

	w = app.do(t, http.MethodGet, "/api/v1/posts/"+id, "", nil)
	requireError(t, w, http.StatusNotFound, apperrors.KindNotFound)
}

func TestPostListHugeOffset(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/posts?offset=9223372036854775807", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode[dto.ListResult[dto.PostResponse]](t, w)
	assert.Empty(t, list.Data.Items)
	assert.Positive(t, list.Data.Total)
	assert.False(t, list.Data.HasMore)
}

func TestPostRequestErrors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		kind   apperrors.Kind
	}{
		{"student cannot post in store", http.MethodPost, "/api/v1/posts",
			map[string]any{"category": "store", "title": "Coffee", "body": "Two for one today."},
			http.StatusForbidden, apperrors.KindForbidden},
		{"unknown category", http.MethodPost, "/api/v1/posts",
			map[string]any{"category": "pets", "title": "Cat", "body": "Very friendly cat."},
			http.StatusBadRequest, apperrors.KindBadRequest},
		{"promotion end without promotion", http.MethodPost, "/api/v1/posts",
			map[string]any{"category": "market", "title": "Lamp", "body": "Bright desk lamp.", "promotion_until": "2030-01-01T00:00:00Z"},
			http.StatusBadRequest, apperrors.KindBadRequest},
		{"invalid id", http.MethodGet, "/api/v1/posts/not-a-uuid", nil,
			http.StatusBadRequest, apperrors.KindBadRequest},
		{"unknown id", http.MethodGet, "/api/v1/posts/" + seed.StableID("post:missing"), nil,
			http.StatusNotFound, apperrors.KindNotFound},
		{"invalid sort", http.MethodGet, "/api/v1/posts?sort=random", nil,
			http.StatusBadRequest, apperrors.KindBadRequest},
		{"non-author cannot promote", http.MethodPost, "/api/v1/posts/" + seed.PostID("sublet-room") + "/promote",
			map[string]any{"promotion_until": "2030-01-01T00:00:00Z"},
			http.StatusForbidden, apperrors.KindForbidden},
		{"unknown route", http.MethodGet, "/api/v1/nowhere", nil,
			http.StatusNotFound, apperrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, tt.method, tt.path, "", tt.body)
			requireError(t, w, tt.status, tt.kind)
		})
	}
}

func TestMalformedJSON(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(`{"category":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	requireError(t, w, http.StatusBadRequest, apperrors.KindBadRequest)
	assert.Equal(t, "Request body is not valid JSON.", decode[any](t, w).Error.Message)
}

func TestReportModeration(t *testing.T) {
	app := newTestApp(t)
	target := seed.PostID("desk-lamp")

	w := app.do(t, http.MethodPost, "/api/v1/reports", "", map[string]any{
		"target_type": "post",
		"target_id":   target,
		"reason":      "spam",
		"details":     "Posted the same lamp three times.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	report := decode[models.Report](t, w)
	assert.Equal(t, models.ReportPending, report.Data.Status)

	w = app.do(t, http.MethodGet, "/api/v1/reports", "", nil)
	requireError(t, w, http.StatusForbidden, apperrors.KindForbidden)

	admin := app.login(t, dto.MockLoginInput{Role: models.RoleAdmin})
	w = app.do(t, http.MethodGet, "/api/v1/reports?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[dto.ListResult[*models.Report]](t, w).Data.Total)

	w = app.do(t, http.MethodPost, "/api/v1/reports/"+report.Data.ID+"/resolve", admin, map[string]any{
		"status":      "actioned",
		"action_note": "Duplicate listing",
		"hide_target": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.ReportActioned, decode[models.Report](t, w).Data.Status)

	w = app.do(t, http.MethodGet, "/api/v1/posts/"+target, "", nil)
	requireError(t, w, http.StatusNotFound, apperrors.KindNotFound)
}

func TestChatOverHTTPAndWebSocket(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	graduate := app.login(t, dto.MockLoginInput{UserID: strPtr(seed.UserID("kaist-main", "graduate"))})

	w := app.do(t, http.MethodPost, "/api/v1/chats/start", graduate, map[string]string{"post_id": seed.PostID("desk-lamp")})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	thread := decode[models.ChatThread](t, w).Data
	assert.Equal(t, seed.StableID("thread:desk-lamp:graduate"), thread.ID)

	// The post author subscribes without a token (default session)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/chats/" + thread.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return app.deps.Hub.ClientsCount(thread.ID) == 1 }, 2*time.Second, 10*time.Millisecond)

	w = app.do(t, http.MethodPost, "/api/v1/chats/"+thread.ID+"/messages", graduate, map[string]string{"body": "  Still for sale?  "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sent := decode[models.ChatMessage](t, w).Data
	assert.Equal(t, "Still for sale?", sent.Body)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event pkgWebsocket.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, pkgWebsocket.EventMessage, event.Type)
	require.NotNil(t, event.Message)
	assert.Equal(t, sent.ID, event.Message.ID)

	w = app.do(t, http.MethodGet, "/api/v1/chats/"+thread.ID+"/messages", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]*models.ChatMessage](t, w).Data, 2)

	// Outsiders can neither read nor subscribe
	professor := app.login(t, dto.MockLoginInput{Role: models.RoleProfessor})
	w = app.do(t, http.MethodGet, "/api/v1/chats/"+thread.ID+"/messages", professor, nil)
	requireError(t, w, http.StatusNotFound, apperrors.KindNotFound)

	header := http.Header{"Authorization": []string{"Bearer " + professor}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func strPtr(s string) *string { return &s }
