// Package postgres registers the PostgreSQL driver and its call
// dialect.
//
// Import this package with a blank identifier to make the "pgx" driver
// and dialect available:
//
//	import _ "github.com/datastack-labs/procdata/pkg/drivers/postgres"
package postgres

import (
	"strconv"

	// Registers the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/datastack-labs/procdata/pkg/dialect"
)

func init() {
	dialect.Register(&dialect.Dialect{
		Name:            "pgx",
		QueryFromSelect: true,
		Placeholder:     func(i int) string { return "$" + strconv.Itoa(i) },
	})
}
