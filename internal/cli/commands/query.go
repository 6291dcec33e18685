package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datastack-labs/procdata/pkg/core"
)

// NewQueryCommand creates the query command, which invokes a stored
// procedure and renders its result set(s).
func NewQueryCommand() *cobra.Command {
	var (
		paramFlags []string
		format     string
		all        bool
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "query PROCEDURE",
		Short: "Query a stored procedure and print its results",
		Long: `Query a stored procedure and print the rows it returns.

By default only the first result set is rendered. Pass --all to fetch
and render every result set the procedure produces.`,
		Example: `  procdata query sp_list_users --param active=true
  procdata query sp_daily_report --param day=2026-08-29 --all --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			procedure := args[0]

			params, err := parseParams(paramFlags, nil)
			if err != nil {
				return err
			}

			ds, source, err := openSource(cmd)
			if err != nil {
				return err
			}

			if format == "" {
				format = ConfigFrom(cmd.Context()).Output
			}

			var tables []*core.Table
			start := time.Now()
			if all {
				tables, err = ds.Data(cmd.Context(), procedure, params...)
			} else {
				var t *core.Table
				t, err = ds.Table(cmd.Context(), procedure, params...)
				if t != nil {
					tables = []*core.Table{t}
				}
			}
			if !noHistory {
				recordCall(cmd, newCall(source, procedure, len(params), 0, start, err))
			}
			if err != nil {
				return err
			}

			for i, t := range tables {
				if len(tables) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "Result set %d:\n", i+1)
				}
				if err := render(cmd.OutOrStdout(), t, format); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "input parameter as name=value (repeatable, in call order)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, json or csv (default from config)")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every result set, not just the first")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording this call in history")

	return cmd
}
