package core

import "errors"

// ErrNoColumn is the cause reported when a name-based binding refers
// to a column the result set does not contain.
var ErrNoColumn = errors.New("column not present in result set")

// RowMapper maps one result-set row onto a T.
type RowMapper[T any] interface {
	MapRow(columns []string, row Row) (T, error)
}

// RowMapperFunc adapts a plain function to the RowMapper interface.
type RowMapperFunc[T any] func(columns []string, row Row) (T, error)

// MapRow calls f.
func (f RowMapperFunc[T]) MapRow(columns []string, row Row) (T, error) {
	return f(columns, row)
}

// Schema is an explicit field-binding table for a record shape: an
// ordered list of (column -> field assignment) pairs declared once per
// shape and reused across calls. It replaces reflection-based row
// mapping with bindings the caller states up front.
type Schema[T any] struct {
	bindings []binding[T]
}

type binding[T any] struct {
	column string
	index  int // -1 when bound by name
	assign func(*T, Value) error
}

// NewSchema returns an empty Schema for T.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{}
}

// Named binds a column by name to a field assignment.
func (s *Schema[T]) Named(column string, assign func(*T, Value) error) *Schema[T] {
	s.bindings = append(s.bindings, binding[T]{column: column, index: -1, assign: assign})
	return s
}

// Pos binds a column by zero-based position to a field assignment.
func (s *Schema[T]) Pos(index int, assign func(*T, Value) error) *Schema[T] {
	s.bindings = append(s.bindings, binding[T]{index: index, assign: assign})
	return s
}

// MapRow populates a zero T from the row. A binding whose column is
// missing, out of range, or whose assignment fails yields a
// MappingError.
func (s *Schema[T]) MapRow(columns []string, row Row) (T, error) {
	var rec T
	for _, b := range s.bindings {
		i := b.index
		if b.column != "" {
			i = -1
			for ci, c := range columns {
				if c == b.column {
					i = ci
					break
				}
			}
			if i < 0 {
				return rec, &MappingError{Column: b.column, Err: ErrNoColumn}
			}
		}
		if i < 0 || i >= len(row) {
			return rec, &MappingError{Index: b.index, Err: ErrNoColumn}
		}
		if err := b.assign(&rec, row[i]); err != nil {
			return rec, &MappingError{Column: b.column, Index: i, Err: err}
		}
	}
	return rec, nil
}
