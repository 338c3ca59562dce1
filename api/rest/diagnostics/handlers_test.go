package diagnostics

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/algorave/errhandler/dispatch"
	"codeberg.org/algorave/errhandler/ginerr"
	"codeberg.org/algorave/errhandler/logging"
	"codeberg.org/algorave/errhandler/presets"
	"codeberg.org/algorave/errhandler/registry"
	"codeberg.org/algorave/errhandler/variant"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(dev bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	reg := registry.New()
	presets.Register(reg)

	h := dispatch.NewWithOptions(dispatch.Options[variant.Response]{
		Catalog: reg,
		Logger:  logging.NewSlog(slog.New(slog.DiscardHandler)),
		DevMode: func() bool { return dev },
	})

	r := gin.New()
	r.Use(ginerr.Middleware(h))
	RegisterRoutes(r.Group("/api/v1"), reg)
	return r
}

func get(t *testing.T, r http.Handler, path string) (int, variant.Response) {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var resp variant.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestUnknownAndTraced(t *testing.T) {
	r := newRouter(true)

	status, resp := get(t, r, "/api/v1/diagnostics/unknown")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, variant.UnknownCode, resp.Code)
	assert.Equal(t, "[no stack]", resp.Stack)

	status, resp = get(t, r, "/api/v1/diagnostics/traced")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.True(t, strings.HasPrefix(resp.Stack, "diagnostic failure with stack\n    at "))
}

func TestPanicRoute(t *testing.T) {
	status, resp := get(t, newRouter(false), "/api/v1/diagnostics/panic")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "panic: diagnostic panic", resp.Message)
	assert.Empty(t, resp.Stack)
}

func TestRegisteredRoute(t *testing.T) {
	r := newRouter(false)

	status, resp := get(t, r, "/api/v1/diagnostics/registered/Conflict")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Conflict", resp.Code)
	assert.Equal(t, "diagnostic Conflict", resp.Message)

	status, resp = get(t, r, "/api/v1/diagnostics/registered/Nope")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NotFound", resp.Code)
}

func TestWrappedRoutes(t *testing.T) {
	r := newRouter(false)

	cases := map[string]struct {
		code   string
		status int
	}{
		"database":   {"DatabaseError", http.StatusInternalServerError},
		"connection": {"ConnectionError", http.StatusServiceUnavailable},
		"cache":      {"CacheError", http.StatusServiceUnavailable},
		"timeout":    {"Timeout", http.StatusGatewayTimeout},
		"websocket":  {"ConnectionClosed", http.StatusGone},
		"other":      {"BadRequest", http.StatusBadRequest},
	}

	for source, want := range cases {
		status, resp := get(t, r, "/api/v1/diagnostics/wrapped/"+source)
		assert.Equal(t, want.status, status, source)
		assert.Equal(t, want.code, resp.Code, source)
	}
}

func TestWrappedStackInDevMode(t *testing.T) {
	_, resp := get(t, newRouter(true), "/api/v1/diagnostics/wrapped/database")

	lines := strings.Split(resp.Stack, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `DatabaseError: ERROR: relation "diagnostics" does not exist (SQLSTATE 42P01)`, lines[0])
	assert.Equal(t, "database operation failed", resp.Message)
}

func TestGetUser(t *testing.T) {
	r := newRouter(false)

	status, resp := get(t, r, "/api/v1/diagnostics/users/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "user not found", resp.Message)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/diagnostics/users/123e4567-e89b-12d3-a456-426614174000", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"123e4567-e89b-12d3-a456-426614174000"}`, w.Body.String())
}

func TestEcho(t *testing.T) {
	r := newRouter(false)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/diagnostics/echo", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"email":"ada@example.com","message":"hi"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = post(`{"email":"ada"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ValidationError")
}
