package dispatch

import (
	"codeberg.org/algorave/errhandler/variant"
)

type Classification int

const (
	Unknown Classification = iota
	Registered
	Wrapped
	// nil or typed-nil input
	Invalid
)

func (c Classification) String() string {
	switch c {
	case Registered:
		return "registered"
	case Wrapped:
		return "wrapped"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of classifying one error.
type Resolution struct {
	Classification Classification
	// the error that gets logged: the wrapper, the registered instance or the raw error
	Subject error
	// nil for unknown and invalid input
	Variant  *variant.Error
	Severity variant.Severity
}

// Resolve classifies err.
//
// The wrap check runs first and short-circuits: when an error's type is
// both a wrap source and a registered variant, it is wrapped and the
// registration is never consulted. This precedence is kept on purpose even
// though registering a wrap source is usually a mistake.
func (h *Handler[T]) Resolve(err error) Resolution {
	if isNil(err) {
		return Resolution{
			Classification: Invalid,
			Subject:        err,
			Severity:       variant.SeverityFatal,
		}
	}

	name := variant.TypeName(err)

	if def, ok := h.catalog.Wrapper(name); ok {
		wrapped, werr := variant.Wrap(def, err.Error(), err)
		if werr == nil {
			return Resolution{
				Classification: Wrapped,
				Subject:        wrapped,
				Variant:        wrapped,
				Severity:       wrapped.Severity(),
			}
		}
	}

	if v, ok := err.(*variant.Error); ok {
		if _, registered := h.catalog.Variant(name); registered {
			return Resolution{
				Classification: Registered,
				Subject:        v,
				Variant:        v,
				Severity:       v.Severity(),
			}
		}
	}

	return Resolution{
		Classification: Unknown,
		Subject:        err,
		Severity:       variant.SeverityError,
	}
}
