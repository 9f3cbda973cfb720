package resolve

import (
	"errors"
	"fmt"
)

// Kind classifies a resolution failure.
type Kind int

const (
	// KindNotFound means the package is not installed anywhere on the search path.
	KindNotFound Kind = iota + 1
	// KindInvalid means the package was found but cannot be used.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned by [Find]. The kind is set where the failure happens, so
// callers never need to inspect the message.
type Error struct {
	Err     error
	Package string
	Root    string
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("resolve %s from %s: %s", e.Package, e.Root, e.Kind)
	}

	return fmt.Sprintf("resolve %s from %s: %s: %v", e.Package, e.Root, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a resolution failure of [KindNotFound].
func IsNotFound(err error) bool {
	var re *Error

	return errors.As(err, &re) && re.Kind == KindNotFound
}
