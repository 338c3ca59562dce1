package diagnostics

import (
	"codeberg.org/algorave/errhandler/variant"
)

// Catalog resolves registered definitions by name.
type Catalog interface {
	Variant(name string) (*variant.Definition, bool)
}

type EchoRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=280"`
}

type EchoResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type UserResponse struct {
	ID string `json:"id"`
}
