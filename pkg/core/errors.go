package core

import "fmt"

// CoercionError is returned when a result value cannot be converted to
// the requested type.
type CoercionError struct {
	From Kind
	To   string
	Err  error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot coerce %s value to %s: %v", e.From, e.To, e.Err)
	}
	return fmt.Sprintf("cannot coerce %s value to %s", e.From, e.To)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// MappingError is returned when a row cannot populate the target
// record shape. Column is set for name-based bindings, Index for
// positional ones.
type MappingError struct {
	Column string
	Index  int
	Err    error
}

func (e *MappingError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("cannot map column %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("cannot map column %d: %v", e.Index, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }
