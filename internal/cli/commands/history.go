package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/datastack-labs/procdata/internal/config"
	"github.com/datastack-labs/procdata/internal/history"
)

// NewHistoryCommand creates the history command, which lists recent
// procedure invocations recorded by exec and query.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent procedure calls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ConfigFrom(cmd.Context())

			path := cfg.HistoryPath
			if path == "" {
				path = config.DefaultHistoryFile
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet. Run a procedure with exec or query first.")
				return nil
			}

			store, err := history.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open history database: %w", err)
			}
			defer func() { _ = store.Close() }()

			calls, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(calls) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet. Run a procedure with exec or query first.")
				return nil
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"STARTED", "SOURCE", "PROCEDURE", "PARAMS", "AFFECTED", "STATUS", "MS"})

			for _, c := range calls {
				status := c.Status
				if c.Error != "" {
					status = fmt.Sprintf("%s: %s", c.Status, truncate(c.Error, 40))
				}
				tw.AppendRow(table.Row{
					c.StartedAt.Local().Format("2006-01-02 15:04:05"),
					c.Source,
					c.Procedure,
					c.Params,
					c.RowsAffected,
					status,
					c.DurationMs,
				})
			}

			tw.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of calls to show")

	return cmd
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
