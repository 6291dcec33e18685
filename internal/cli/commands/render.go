package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/datastack-labs/procdata/pkg/core"
)

// render writes one result set in the requested format.
func render(w io.Writer, t *core.Table, format string) error {
	switch format {
	case "json":
		return renderJSON(w, t)
	case "csv":
		return renderCSV(w, t)
	default:
		return renderTable(w, t)
	}
}

func renderTable(w io.Writer, t *core.Table) error {
	if t.Empty() {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		headerRow[i] = col
	}
	tw.AppendHeader(headerRow)

	for _, row := range t.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = formatValue(v)
		}
		tw.AppendRow(out)
	}

	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(t.Rows))
	return nil
}

func renderJSON(w io.Writer, t *core.Table) error {
	results := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				m[col] = jsonValue(row[i])
			}
		}
		results = append(results, m)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderCSV(w io.Writer, t *core.Table) error {
	_, _ = fmt.Fprintln(w, strings.Join(t.Columns, ","))
	for _, row := range t.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = escapeCSV(formatValue(v))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

// formatValue renders a cell for table and CSV output.
func formatValue(v core.Value) string {
	if v.IsNull() {
		return "NULL"
	}
	s, err := v.Text()
	if err != nil {
		return fmt.Sprint(v.Any())
	}
	return s
}

// jsonValue keeps native types in JSON output; raw bytes become
// strings for readability.
func jsonValue(v core.Value) any {
	if v.Kind() == core.KindBytes {
		if s, err := v.Text(); err == nil {
			return s
		}
	}
	return v.Any()
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
