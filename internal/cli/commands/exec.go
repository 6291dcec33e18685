package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datastack-labs/procdata/pkg/core"
)

// NewExecCommand creates the exec command, which invokes a stored
// procedure for its side effects and reports the affected row count.
func NewExecCommand() *cobra.Command {
	var (
		paramFlags []string
		outFlags   []string
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "exec PROCEDURE",
		Short: "Execute a stored procedure",
		Long: `Execute a stored procedure against the configured data source.

Input parameters are passed with --param name=value, in call order.
Output parameters are declared with --out name; their values are
printed after the call completes.`,
		Example: `  procdata exec sp_update_counter --param name=visits --param delta=1
  procdata exec sp_archive_orders --source warehouse --param cutoff=2026-01-01 --out archived`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			procedure := args[0]

			params, err := parseParams(paramFlags, outFlags)
			if err != nil {
				return err
			}

			ds, source, err := openSource(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			affected, err := ds.Execute(cmd.Context(), procedure, params...)
			if !noHistory {
				recordCall(cmd, newCall(source, procedure, len(params), affected, start, err))
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d rows affected\n", affected)
			for _, p := range params {
				if p.Direction() == core.DirInput {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", p.Name(), formatValue(p.Out()))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "input parameter as name=value (repeatable, in call order)")
	cmd.Flags().StringArrayVar(&outFlags, "out", nil, "output parameter name (repeatable, appended after inputs)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording this call in history")

	return cmd
}
