package format

import (
	"net/http"
	"strconv"

	"codeberg.org/algorave/errhandler/variant"
)

// JSONAPIError is one entry of a JSON:API error document.
type JSONAPIError struct {
	ID     string         `json:"id,omitempty"`
	Status string         `json:"status,omitempty"`
	Code   string         `json:"code,omitempty"`
	Title  string         `json:"title,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

type JSONAPIDocument struct {
	Errors []JSONAPIError `json:"errors"`
}

func (JSONAPIDocument) ContentType() string {
	return "application/vnd.api+json; charset=utf-8"
}

func JSONAPI(r variant.Response) Body {
	apiErr := JSONAPIError{
		ID:     generateErrorID(),
		Status: strconv.Itoa(r.StatusCode),
		Code:   r.Code,
		Title:  http.StatusText(r.StatusCode),
		Detail: r.Message,
	}

	meta := map[string]any{}
	if r.Details != nil {
		meta["details"] = r.Details
	}
	if r.Stack != "" {
		meta["stack"] = r.Stack
	}
	if len(meta) > 0 {
		apiErr.Meta = meta
	}

	return JSONAPIDocument{Errors: []JSONAPIError{apiErr}}
}
