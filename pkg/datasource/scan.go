package datasource

import (
	"database/sql"

	"github.com/datastack-labs/procdata/pkg/core"
)

// readTable drains the current result set into a Table. The caller
// owns rows and advances result sets.
func readTable(rows *sql.Rows) (*core.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	t := &core.Table{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(core.Row, len(cols))
		for i, v := range values {
			row[i] = core.FromAny(v)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, rows.Err()
}
