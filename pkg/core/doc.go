// Package core defines the shared language of procdata.
//
// This package contains:
//   - Call parameters (Param, Direction)
//   - Result containers (Value, Row, Table)
//   - Record mapping contracts (RowMapper, Schema)
//   - The error taxonomy (CoercionError, MappingError)
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
