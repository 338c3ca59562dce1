package health

import (
	"codeberg.org/algorave/errhandler/registry"
	"codeberg.org/algorave/errhandler/variant"
)

// Catalog is the part of the registry reported by the health check.
type Catalog interface {
	Variants() []*variant.Definition
	Wraps() []registry.WrapRule
}

type Response struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version,omitempty"`
	Environment string `json:"environment,omitempty"`
	Variants    int    `json:"variants"`
	WrapRules   int    `json:"wrap_rules"`
}

type PingResponse struct {
	Message string `json:"message"`
}
