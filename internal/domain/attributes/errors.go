package attributes

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingAttributeError reports that a required attribute key is absent.
// The Enumerator also uses it as the end-of-sequence signal when probing.
type MissingAttributeError struct {
	Key string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing attribute %q", e.Key)
}

// TypeCoercionError reports a present attribute whose value cannot be decoded
// into its declared kind. It never terminates an enumeration.
type TypeCoercionError struct {
	Key  string
	Raw  string
	Kind ScalarKind
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("attribute %q: cannot decode %q as %s", e.Key, e.Raw, e.Kind)
}

// EnumerationError locates a hard failure inside an enumeration.
type EnumerationError struct {
	Entity  string
	Indices []int
	Err     error
}

func (e *EnumerationError) Error() string {
	parts := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		parts[i] = strconv.Itoa(idx)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Entity, strings.Join(parts, ","), e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}
