package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pagecraft/catalog"
	"pagecraft/common"
	"pagecraft/config"
	"pagecraft/project"
	"pagecraft/tools"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	p, err := project.New(catalog.Default(), "Board Update", common.ContentTypePresentation, "")
	require.NoError(t, err)
	surface := tools.New(catalog.NewRegistry(catalog.Default()), p, tools.WithLogger(log))
	return New(&cfg.Server, surface, nil, log)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func call(t *testing.T, h http.Handler, name, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/tools/"+name, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestListTools(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tools", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []tools.Tool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	names := make([]string, 0, len(list))
	for _, tool := range list {
		names = append(names, tool.Name)
	}
	assert.Contains(t, names, "create_page")
	assert.Contains(t, names, "export_project")
	assert.Len(t, names, 8)
}

func TestCallTool(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	code, env := call(t, h, "create_page", `{"layoutId":"title-slide","content":{"title":"Q3 Results"}}`)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success, env.Error)

	var created tools.CreatedItem
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 1, created.TotalItems)
	assert.NotEmpty(t, created.ItemID)

	code, env = call(t, h, "get_project_status", ``)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"totalPages":1`)
}

func TestCallToolErrors(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		name   string
		tool   string
		body   string
		status int
		errMsg string
	}{
		{"unknown tool", "format_disk", `{}`, http.StatusNotFound, `Unknown tool "format_disk"`},
		{"broken json", "create_page", `{"layoutId":`, http.StatusBadRequest, "not valid JSON"},
		{"unknown layout", "create_page", `{"layoutId":"nope"}`, http.StatusOK, `Layout "nope" not found`},
		{"unknown page", "update_page_content", `{"pageId":"x","slot":"title","content":"y"}`, http.StatusOK, `Page "x" not found`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := call(t, h, tt.tool, tt.body)
			assert.Equal(t, tt.status, code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Error, tt.errMsg)
		})
	}
}

func TestExportProject(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	_, env := call(t, h, "create_page", `{"layoutId":"title-slide","content":{"title":"Q3 Results"}}`)
	require.True(t, env.Success)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/project/export/html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Board Update.html"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "0", rec.Header().Get("X-Export-Failures"))
	assert.Contains(t, rec.Body.String(), "Q3 Results")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/project/export/pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/project/export/docx", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEmptyProject(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/project/export/pptx", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/tools/create_page", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
