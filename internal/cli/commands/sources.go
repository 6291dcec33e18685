package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewSourcesCommand creates the sources command, which lists the
// configured data sources. DSNs are not printed; they may carry
// credentials.
func NewSourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List configured data sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ConfigFrom(cmd.Context())

			if len(cfg.Sources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sources configured. Add a sources section to procdata.yaml.")
				return nil
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"NAME", "DRIVER", "DIALECT", "DEFAULT"})

			for _, name := range cfg.SourceNames() {
				src := cfg.Sources[name]
				dialectName := src.Dialect
				if dialectName == "" {
					dialectName = src.Driver
				}
				def := ""
				if name == cfg.DefaultSource {
					def = "*"
				}
				tw.AppendRow(table.Row{name, src.Driver, dialectName, def})
			}

			tw.Render()
			return nil
		},
	}
}
