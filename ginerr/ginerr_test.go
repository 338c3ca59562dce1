package ginerr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/algorave/errhandler/dispatch"
	"codeberg.org/algorave/errhandler/format"
	"codeberg.org/algorave/errhandler/logging"
	"codeberg.org/algorave/errhandler/presets"
	"codeberg.org/algorave/errhandler/variant"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// remembers the fields of the last child logger used for a dispatch
type fieldsLogger struct {
	fields *map[string]any
	calls  *int
}

func newFieldsLogger() *fieldsLogger {
	return &fieldsLogger{fields: &map[string]any{}, calls: new(int)}
}

func (l *fieldsLogger) Child(fields map[string]any) logging.Logger {
	*l.fields = fields
	return l
}

func (l *fieldsLogger) Enabled(variant.Severity) bool { return true }
func (l *fieldsLogger) Trace(any, ...any)             { *l.calls++ }
func (l *fieldsLogger) Debug(any, ...any)             { *l.calls++ }
func (l *fieldsLogger) Info(any, ...any)              { *l.calls++ }
func (l *fieldsLogger) Warn(any, ...any)              { *l.calls++ }
func (l *fieldsLogger) Error(any, ...any)             { *l.calls++ }
func (l *fieldsLogger) Fatal(any, ...any)             { *l.calls++ }

func newRouter(log logging.Logger) *gin.Engine {
	h := dispatch.NewWithOptions(dispatch.Options[variant.Response]{
		Logger:  log,
		DevMode: func() bool { return false },
	})
	presets.Register(h)

	r := gin.New()
	r.Use(Middleware(h))
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) variant.Response {
	t.Helper()

	var resp variant.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegisteredError(t *testing.T) {
	r := newRouter(newFieldsLogger())
	r.GET("/users/:id", func(c *gin.Context) {
		c.Error(presets.NotFound.New("user not found")) //nolint:errcheck,gosec
	})

	w := serve(r, http.MethodGet, "/users/42", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, variant.Response{Code: "NotFound", Message: "user not found", StatusCode: 404}, decode(t, w))
}

func TestUnknownError(t *testing.T) {
	r := newRouter(newFieldsLogger())
	r.GET("/", func(c *gin.Context) {
		c.Error(errors.New("boom")) //nolint:errcheck,gosec
	})

	w := serve(r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, variant.Response{Code: "UnknownError", Message: "boom", StatusCode: 500}, decode(t, w))
}

func TestNoErrorPassesThrough(t *testing.T) {
	log := newFieldsLogger()
	r := newRouter(log)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := serve(r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, *log.calls)
}

func TestWrittenResponseIsOnlyLogged(t *testing.T) {
	log := newFieldsLogger()
	r := newRouter(log)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"queued": true})
		c.Error(errors.New("late failure")) //nolint:errcheck,gosec
	})

	w := serve(r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"queued":true}`, w.Body.String())
	assert.Equal(t, 1, *log.calls)
}

func TestPanicRecovery(t *testing.T) {
	r := newRouter(newFieldsLogger())
	r.GET("/string", func(*gin.Context) { panic("boom") })
	r.GET("/variant", func(*gin.Context) { panic(presets.Conflict.New("already exists")) })

	w := serve(r, http.MethodGet, "/string", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "panic: boom", decode(t, w).Message)

	w = serve(r, http.MethodGet, "/variant", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Conflict", decode(t, w).Code)
}

func TestPanicAfterWriteIsOnlyLogged(t *testing.T) {
	log := newFieldsLogger()
	r := newRouter(log)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		panic("late boom")
	})

	w := serve(r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, 1, *log.calls)
}

func TestWrappedDriverError(t *testing.T) {
	r := newRouter(newFieldsLogger())
	r.POST("/items", func(c *gin.Context) {
		var body map[string]any
		if !BindJSON(c, &body) {
			return
		}
		c.Status(http.StatusCreated)
	})

	w := serve(r, http.MethodPost, "/items", `{"name": ]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "MalformedJSON", resp.Code)
	assert.Equal(t, "request body is not valid JSON", resp.Message)

	w = serve(r, http.MethodPost, "/items", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MalformedJSON", decode(t, w).Code)
}

func TestBindJSONValidationAndEmptyBody(t *testing.T) {
	type createUser struct {
		Email string `json:"email" binding:"required,email"`
	}

	r := newRouter(newFieldsLogger())
	r.POST("/users", func(c *gin.Context) {
		var body createUser
		if !BindJSON(c, &body) {
			return
		}
		c.Status(http.StatusCreated)
	})

	w := serve(r, http.MethodPost, "/users", `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", decode(t, w).Code)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BadRequest", decode(t, w).Code)

	w = serve(r, http.MethodPost, "/users", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFormattedBodyContentType(t *testing.T) {
	h := dispatch.NewWithOptions(dispatch.Options[format.Body]{
		FormatMessage: dispatch.Formatter[format.Body](format.Problem("https://errors.example.com")),
		Logger:        newFieldsLogger(),
		DevMode:       func() bool { return false },
	})
	presets.Register(h)

	r := gin.New()
	r.Use(Middleware(h))
	r.GET("/", func(c *gin.Context) {
		c.Error(presets.Forbidden.New("no access")) //nolint:errcheck,gosec
	})

	w := serve(r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "application/problem+json; charset=utf-8", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://errors.example.com/forbidden", body["type"])
	assert.Equal(t, "no access", body["detail"])
}

func TestRequestFields(t *testing.T) {
	log := newFieldsLogger()
	r := newRouter(log)
	r.GET("/users/:id", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		c.Error(errors.New("boom")) //nolint:errcheck,gosec
	})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	req = req.WithContext(trace.ContextWithSpanContext(req.Context(), sc))
	r.ServeHTTP(httptest.NewRecorder(), req)

	fields := *log.fields
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, "/users/42", fields["path"])
	assert.Equal(t, "/users/:id", fields["route"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "u-1", fields["user_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	assert.NotEmpty(t, fields["client_ip"])
}

func TestRateLimit(t *testing.T) {
	l, err := NewLimiter("1-M", nil)
	require.NoError(t, err)

	r := newRouter(newFieldsLogger())
	r.Use(RateLimit(l))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "TooManyRequests", decode(t, w).Code)
}

func TestNewLimiterRejectsBadRate(t *testing.T) {
	_, err := NewLimiter("lots", nil)
	assert.Error(t, err)
}
