package format

import (
	"encoding/json"
	"net/http"
	"strings"

	"codeberg.org/algorave/errhandler/variant"
)

// ProblemDetail is an RFC 9457 problem details document.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"` // marshaled inline
}

func (ProblemDetail) ContentType() string {
	return "application/problem+json; charset=utf-8"
}

func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
	}
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}

	// reserved members cannot be overridden by extensions
	for k, v := range p.Extensions {
		if k != "type" && k != "title" && k != "status" && k != "detail" && k != "instance" {
			m[k] = v
		}
	}

	return json.Marshal(m)
}

// Problem formats responses as problem details. The problem type is
// baseURL followed by the kebab-cased code, or "about:blank" without a base.
func Problem(baseURL string) Func {
	base := strings.TrimSuffix(baseURL, "/")

	return func(r variant.Response) Body {
		problemType := "about:blank"
		if base != "" {
			problemType = base + "/" + kebabCase(r.Code)
		}

		p := ProblemDetail{
			Type:   problemType,
			Title:  http.StatusText(r.StatusCode),
			Status: r.StatusCode,
			Detail: r.Message,
			Extensions: map[string]any{
				"code":     r.Code,
				"error_id": generateErrorID(),
			},
		}

		if r.Details != nil {
			p.Extensions["errors"] = r.Details
		}

		if r.Stack != "" {
			p.Extensions["stack"] = r.Stack
		}

		return p
	}
}
