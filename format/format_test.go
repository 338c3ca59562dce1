package format

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"codeberg.org/algorave/errhandler/dispatch"
	"codeberg.org/algorave/errhandler/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notFound = variant.Response{
	Code:       "NotFound",
	Message:    "user not found",
	StatusCode: http.StatusNotFound,
}

func toMap(t *testing.T, body Body) map[string]any {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestWords(t *testing.T) {
	assert.Equal(t, "http_error", snakeCase("HTTPError"))
	assert.Equal(t, "unknown_error", snakeCase("UnknownError"))
	assert.Equal(t, "too_many_requests", snakeCase("TooManyRequests"))
	assert.Equal(t, "not-found", kebabCase("NotFound"))
	assert.Equal(t, "malformed-json", kebabCase("MalformedJSON"))
	assert.Equal(t, "custom", snakeCase("custom"))
}

func TestCanonical(t *testing.T) {
	m := toMap(t, Canonical(notFound))

	assert.Equal(t, "NotFound", m["code"])
	assert.Equal(t, "user not found", m["message"])
	assert.EqualValues(t, 404, m["statusCode"])
	assert.NotContains(t, m, "stack")
	assert.Equal(t, "application/json; charset=utf-8", Canonical(notFound).ContentType())
}

func TestProblem(t *testing.T) {
	body := Problem("https://errors.example.com/")(notFound)

	p, ok := body.(ProblemDetail)
	require.True(t, ok)
	assert.Equal(t, "https://errors.example.com/not-found", p.Type)
	assert.Equal(t, "Not Found", p.Title)
	assert.Equal(t, "application/problem+json; charset=utf-8", body.ContentType())

	m := toMap(t, body)
	assert.Equal(t, "user not found", m["detail"])
	assert.Equal(t, "NotFound", m["code"])
	assert.True(t, strings.HasPrefix(m["error_id"].(string), "err-"))
	assert.NotContains(t, m, "stack")
}

func TestProblemWithoutBaseAndWithStack(t *testing.T) {
	r := notFound
	r.Stack = "NotFound: user not found\n    at main.main (main.go:1)"
	r.Details = map[string]any{"id": "42"}

	m := toMap(t, Problem("")(r))

	assert.Equal(t, "about:blank", m["type"])
	assert.Equal(t, r.Stack, m["stack"])
	assert.Equal(t, map[string]any{"id": "42"}, m["errors"])
}

func TestProblemReservedExtensions(t *testing.T) {
	p := ProblemDetail{Type: "about:blank", Title: "Bad Request", Status: 400, Extensions: map[string]any{"status": 999}}

	m := toMap(t, p)

	assert.EqualValues(t, 400, m["status"])
}

func TestSimple(t *testing.T) {
	m := toMap(t, Simple(notFound))

	assert.Equal(t, map[string]any{"error": "user not found", "code": "NotFound"}, m)
}

func TestJSONAPI(t *testing.T) {
	r := notFound
	r.Details = "id=42"

	body := JSONAPI(r)
	doc, ok := body.(JSONAPIDocument)
	require.True(t, ok)
	require.Len(t, doc.Errors, 1)

	e := doc.Errors[0]
	assert.Equal(t, "404", e.Status)
	assert.Equal(t, "NotFound", e.Code)
	assert.Equal(t, "Not Found", e.Title)
	assert.Equal(t, "user not found", e.Detail)
	assert.Equal(t, "id=42", e.Meta["details"])
	assert.Equal(t, "application/vnd.api+json; charset=utf-8", body.ContentType())
}

func TestCompact(t *testing.T) {
	body := Compact(variant.Response{Code: "TooManyRequests", Message: "slow down", StatusCode: 429})

	assert.Equal(t, ErrorResponse{Error: "too_many_requests", Message: "slow down"}, body)
}

func TestByName(t *testing.T) {
	for _, name := range []string{NameCanonical, NameProblem, NameSimple, NameJSONAPI, NameCompact, ""} {
		fn, err := ByName(name, "")
		require.NoError(t, err, name)
		assert.NotNil(t, fn(notFound))
	}

	_, err := ByName("xml", "")
	assert.Error(t, err)
}

func TestWithHandler(t *testing.T) {
	h := dispatch.NewWithOptions(dispatch.Options[Body]{
		FormatMessage: dispatch.Formatter[Body](Compact),
		DevMode:       func() bool { return false },
	})

	body := h.ErrorToHTTPResponse(assert.AnError)

	assert.Equal(t, ErrorResponse{Error: "unknown_error", Message: assert.AnError.Error()}, body)
}
