// Package format provides ready-made response formatters for the dispatch
// engine. Each one turns the canonical variant.Response into a Body that
// knows its own media type, so a single dispatch.Handler[format.Body] can
// serve any of them.
package format

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"

	"codeberg.org/algorave/errhandler/variant"
)

// Body is a formatted error payload.
type Body interface {
	ContentType() string
}

// Func formats a canonical response. It converts to dispatch.Formatter[Body].
type Func func(variant.Response) Body

const (
	NameCanonical = "canonical"
	NameProblem   = "problem"
	NameSimple    = "simple"
	NameJSONAPI   = "jsonapi"
	NameCompact   = "compact"
)

const contentTypeJSON = "application/json; charset=utf-8"

// returns the formatter registered under name; baseURL only affects problem details
func ByName(name, baseURL string) (Func, error) {
	switch name {
	case NameCanonical, "":
		return Canonical, nil
	case NameProblem:
		return Problem(baseURL), nil
	case NameSimple:
		return Simple, nil
	case NameJSONAPI:
		return JSONAPI, nil
	case NameCompact:
		return Compact, nil
	default:
		return nil, fmt.Errorf("unknown response format %q", name)
	}
}

// CanonicalBody is the canonical response served as plain JSON.
type CanonicalBody variant.Response

func (CanonicalBody) ContentType() string { return contentTypeJSON }

func Canonical(r variant.Response) Body {
	return CanonicalBody(r)
}

// splits a type name like "HTTPError" or "UnknownError" into lower-case words
func words(name string) []string {
	runes := []rune(name)

	var out []string
	var cur []rune

	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
			continue
		}

		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				out = append(out, string(cur))
				cur = nil
			}
		}

		cur = append(cur, unicode.ToLower(r))
	}

	if len(cur) > 0 {
		out = append(out, string(cur))
	}

	return out
}

func snakeCase(name string) string {
	return strings.Join(words(name), "_")
}

func kebabCase(name string) string {
	return strings.Join(words(name), "-")
}

func generateErrorID() string {
	bytes := make([]byte, 16) //nolint:makezero // crypto/rand.Read requires pre-allocated buffer
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("err-%d", time.Now().UnixNano())
	}

	return "err-" + hex.EncodeToString(bytes)
}
