package format

import (
	"codeberg.org/algorave/errhandler/variant"
)

// SimpleBody is a flat JSON object: error, code, and details or stack when present.
type SimpleBody map[string]any

func (SimpleBody) ContentType() string { return contentTypeJSON }

func Simple(r variant.Response) Body {
	body := SimpleBody{
		"error": r.Message,
		"code":  r.Code,
	}

	if r.Details != nil {
		body["details"] = r.Details
	}

	if r.Stack != "" {
		body["stack"] = r.Stack
	}

	return body
}
