package datasource

import (
	"context"
	"fmt"

	"github.com/datastack-labs/procdata/pkg/core"
)

// Go methods cannot carry type parameters, so the typed operations are
// package-level functions taking the DataSource as an argument.

// Scalar invokes a stored procedure and returns the first column of
// the first row of the first result set, coerced to T. An absent or
// null result yields T's zero value, never an error.
func Scalar[T any](ctx context.Context, ds *DataSource, procedure string, params ...core.Param) (T, error) {
	var zero T
	t, err := ds.Table(ctx, procedure, params...)
	if err != nil {
		return zero, err
	}
	if t.Empty() || len(t.Rows[0]) == 0 || t.Rows[0][0].IsNull() {
		return zero, nil
	}
	v, err := core.Coerce[T](t.Rows[0][0])
	if err != nil {
		return zero, fmt.Errorf("failed to coerce scalar result of %s: %w", procedure, err)
	}
	return v, nil
}

// Records invokes a stored procedure and maps every row of its result
// set onto a T. A row that fails to map aborts the call.
func Records[T any](ctx context.Context, ds *DataSource, procedure string, mapper core.RowMapper[T], params ...core.Param) ([]T, error) {
	t, err := ds.Table(ctx, procedure, params...)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(t.Rows))
	for i, row := range t.Rows {
		rec, err := mapper.MapRow(t.Columns, row)
		if err != nil {
			return nil, fmt.Errorf("failed to map row %d of %s: %w", i, procedure, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Record invokes a stored procedure and maps the first row of its
// result set onto a T. A zero-row result yields T's zero value, not an
// error.
func Record[T any](ctx context.Context, ds *DataSource, procedure string, mapper core.RowMapper[T], params ...core.Param) (T, error) {
	var zero T
	t, err := ds.Table(ctx, procedure, params...)
	if err != nil {
		return zero, err
	}
	if t.Empty() {
		return zero, nil
	}

	rec, err := mapper.MapRow(t.Columns, t.Rows[0])
	if err != nil {
		return zero, fmt.Errorf("failed to map record of %s: %w", procedure, err)
	}
	return rec, nil
}
