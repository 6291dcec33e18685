// Package duckdb registers the DuckDB driver and its call dialect.
// DuckDB macros and table functions are invoked from a SELECT.
//
// Import this package with a blank identifier to make the "duckdb"
// driver and dialect available:
//
//	import _ "github.com/datastack-labs/procdata/pkg/drivers/duckdb"
package duckdb

import (
	// Registers the duckdb database/sql driver.
	_ "github.com/marcboeker/go-duckdb"

	"github.com/datastack-labs/procdata/pkg/dialect"
)

func init() {
	dialect.Register(&dialect.Dialect{
		Name:            "duckdb",
		QueryFromSelect: true,
	})
}
