package variant

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned when a wrapper is built without the error it
// is supposed to replace.
var ErrInvalidArgument = errors.New("invalid argument")

// Wrap creates a KindWrapped instance of def that replaces original.
//
// The resulting stack keeps a short header from the wrap site (the message
// lines plus one frame) followed by the original error's full stack. The
// wrapper's own stack is still available through StackBeforeRethrow.
func Wrap(def *Definition, message string, original error) (*Error, error) {
	return wrap(def, message, original)
}

func wrap(def *Definition, message string, original error) (*Error, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: wrapper definition is required", ErrInvalidArgument)
	}

	if original == nil {
		return nil, fmt.Errorf("%w: %s requires a message and an original error", ErrInvalidArgument, def.name)
	}

	// Wrap or Definition.Wrap, then wrap itself
	e := newError(def, KindWrapped, message, callerSkip+1)
	e.original = original
	e.stackBeforeRethrow = e.stack

	messageLines := strings.Count(message, "\n") + 1
	own := strings.Split(e.stack, "\n")
	keep := min(messageLines+1, len(own))

	e.stack = strings.Join(own[:keep], "\n") + "\n" + originalStack(original)

	return e, nil
}

// stack of the replaced error, falling back to its message when it has none
func originalStack(err error) string {
	if st := StackOf(err); st != "" {
		return st
	}

	return err.Error()
}
