package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propchat/propchat/chat"
	"github.com/propchat/propchat/config"
	"github.com/propchat/propchat/store"
)

type stubPipeline struct {
	lastQuestion string
	lastPreserve bool
	resets       int
	tenantID     string
	history      []chat.Turn
	response     *chat.Response
}

func (p *stubPipeline) Ask(_ context.Context, question string, preserve bool) *chat.Response {
	p.lastQuestion = question
	p.lastPreserve = preserve
	if p.response != nil {
		return p.response
	}
	return &chat.Response{Answer: "stub answer", Category: chat.CategoryData, SQL: "SELECT 1"}
}

func (p *stubPipeline) ResetHistory()             { p.resets++ }
func (p *stubPipeline) History() []chat.Turn      { return p.history }
func (p *stubPipeline) SetTenant(tenantID string) { p.tenantID = tenantID }

type stubStore struct {
	pingErr error
}

func (s *stubStore) Execute(context.Context, string) (*store.QueryResult, error) { return nil, nil }
func (s *stubStore) DistinctCities(context.Context) ([]string, error)            { return nil, nil }
func (s *stubStore) DistinctDevelopers(context.Context, string) ([]string, error) {
	return nil, nil
}
func (s *stubStore) DistinctProjects(context.Context, string) ([]string, error) { return nil, nil }
func (s *stubStore) TableCounts(context.Context) (map[string]int, error) {
	return map[string]int{"projects": 6, "project_units": 8}, nil
}
func (s *stubStore) Ping(context.Context) error { return s.pingErr }
func (s *stubStore) Close() error               { return nil }

func testServer() (*Server, *stubPipeline) {
	cfg := config.Default()
	pipe := &stubPipeline{}
	srv := &Server{
		cfg:       cfg,
		store:     &stubStore{},
		pipelines: map[string]Pipeline{cfg.DefaultModel: pipe},
	}
	return srv, pipe
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	return rec, decoded
}

func TestHandleChat(t *testing.T) {
	srv, pipe := testServer()

	rec, body := doJSON(t, srv.Router(), "POST", "/chat",
		`{"question": "How many projects in Chennai?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stub answer", body["answer"])
	assert.Equal(t, "data", body["category"])
	assert.Equal(t, "SELECT 1", body["sql"])

	assert.Equal(t, "How many projects in Chennai?", pipe.lastQuestion)
	assert.True(t, pipe.lastPreserve)
}

func TestHandleChatPreserveHistoryFalse(t *testing.T) {
	srv, pipe := testServer()

	rec, _ := doJSON(t, srv.Router(), "POST", "/chat",
		`{"question": "hi", "preserve_history": false}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, pipe.lastPreserve)
}

func TestHandleChatValidation(t *testing.T) {
	srv, _ := testServer()

	rec, body := doJSON(t, srv.Router(), "POST", "/chat", `{"question": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no question provided", body["error"])

	rec, _ = doJSON(t, srv.Router(), "POST", "/chat", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = doJSON(t, srv.Router(), "POST", "/chat",
		`{"question": "hi", "model": "nonexistent"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "unknown model")
}

func TestHandleReset(t *testing.T) {
	srv, pipe := testServer()

	rec, body := doJSON(t, srv.Router(), "POST", "/chat/reset", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, 1, pipe.resets)
}

func TestHandleHistory(t *testing.T) {
	srv, pipe := testServer()
	pipe.history = []chat.Turn{
		{Role: chat.RoleUser, Content: "hello"},
		{Role: chat.RoleAssistant, Content: "Hi!"},
	}

	rec, body := doJSON(t, srv.Router(), "GET", "/chat/history", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	history, ok := body["history"].([]interface{})
	require.True(t, ok)
	require.Len(t, history, 2)
	first := history[0].(map[string]interface{})
	assert.Equal(t, "hello", first["content"])
}

func TestHandleModels(t *testing.T) {
	srv, _ := testServer()

	rec, body := doJSON(t, srv.Router(), "GET", "/models", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, srv.cfg.DefaultModel, body["default"])

	models, ok := body["models"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, models, "qwen")
	assert.Contains(t, models, "deepseek")
}

func TestHandleTenants(t *testing.T) {
	srv, _ := testServer()

	rec, body := doJSON(t, srv.Router(), "GET", "/tenants", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "all", body["default"])

	tenants, ok := body["tenants"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Casagrand", tenants["casagrand"])
}

func TestHandleSetTenant(t *testing.T) {
	srv, pipe := testServer()

	rec, body := doJSON(t, srv.Router(), "PUT", "/tenant", `{"tenant": "casagrand"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "TM_TEAM_001", pipe.tenantID)

	rec, body = doJSON(t, srv.Router(), "PUT", "/tenant", `{"tenant": "nonexistent"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "unknown tenant")
}

func TestHandleHealth(t *testing.T) {
	srv, _ := testServer()

	rec, body := doJSON(t, srv.Router(), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])

	tables, ok := body["tables"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(6), tables["projects"])
}

func TestHandleHealthUnhealthy(t *testing.T) {
	srv, _ := testServer()
	srv.store = &stubStore{pingErr: assert.AnError}

	rec, body := doJSON(t, srv.Router(), "GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", body["status"])
}
