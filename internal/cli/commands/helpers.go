package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/datastack-labs/procdata/internal/config"
	"github.com/datastack-labs/procdata/internal/history"
	"github.com/datastack-labs/procdata/pkg/core"
	"github.com/datastack-labs/procdata/pkg/datasource"
	"github.com/datastack-labs/procdata/pkg/dialect"
)

// openSource resolves the --source flag (or the configured default)
// into a DataSource. Returns the resolved source name for history
// recording.
func openSource(cmd *cobra.Command) (*datasource.DataSource, string, error) {
	cfg := ConfigFrom(cmd.Context())

	name, _ := cmd.Flags().GetString("source")
	src, resolved, err := cfg.Source(name)
	if err != nil {
		return nil, "", err
	}

	var opts []datasource.Option
	if cfg.Verbose {
		opts = append(opts, datasource.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}
	if src.Dialect != "" {
		d, ok := dialect.Get(src.Dialect)
		if !ok {
			return nil, "", fmt.Errorf("unknown dialect %q for source %s (registered: %v)", src.Dialect, resolved, dialect.List())
		}
		opts = append(opts, datasource.WithDialect(d))
	}

	return datasource.New(src.Driver, src.DSN, opts...), resolved, nil
}

// parseParams turns --param name=value and --out name flags into call
// parameters, inputs first, in the order given.
func parseParams(inputs, outs []string) ([]core.Param, error) {
	params := make([]core.Param, 0, len(inputs)+len(outs))
	for _, in := range inputs {
		name, value, ok := strings.Cut(in, "=")
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q (expected name=value)", in)
		}
		params = append(params, core.Input(name, value))
	}
	for _, name := range outs {
		params = append(params, core.Output(name))
	}
	return params, nil
}

// recordCall writes one invocation to the history database. History
// failures never fail the command; they surface as a warning.
func recordCall(cmd *cobra.Command, call *history.Call) {
	cfg := ConfigFrom(cmd.Context())

	path := cfg.HistoryPath
	if path == "" {
		path = config.DefaultHistoryFile
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to create history directory: %v\n", err)
			return
		}
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to open history database: %v\n", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(call); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to record call: %v\n", err)
	}
}

// newCall builds a history record for a finished invocation.
func newCall(source, procedure string, params int, affected int64, start time.Time, err error) *history.Call {
	call := &history.Call{
		Source:       source,
		Procedure:    procedure,
		Params:       params,
		RowsAffected: affected,
		Status:       history.StatusOK,
		StartedAt:    start.UTC(),
		DurationMs:   time.Since(start).Milliseconds(),
	}
	if err != nil {
		call.Status = history.StatusError
		call.Error = err.Error()
	}
	return call
}
