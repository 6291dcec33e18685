// Package main provides the procdata command-line interface.
package main

import (
	"github.com/datastack-labs/procdata/internal/cli"

	_ "github.com/datastack-labs/procdata/pkg/drivers/duckdb"
	_ "github.com/datastack-labs/procdata/pkg/drivers/postgres"
)

func main() {
	cli.Execute()
}
