// Package dialect describes how database drivers spell stored-procedure
// invocations: placeholder style and the statement form used for
// row-returning calls.
package dialect

import "strings"

// Dialect is the call syntax for one database/sql driver. Only the
// procedure name and placeholders ever appear in rendered text.
type Dialect struct {
	// Name is the database/sql driver name this dialect applies to.
	Name string

	// NamedArgs reports whether the driver accepts sql.Named arguments.
	NamedArgs bool

	// QueryFromSelect renders row-returning calls as
	// SELECT * FROM name(...) instead of CALL name(...). Required for
	// drivers whose procedures and table functions are invoked from a
	// SELECT (postgres functions, duckdb macros).
	QueryFromSelect bool

	// Placeholder renders the i-th (1-based) parameter placeholder.
	// Nil means "?".
	Placeholder func(i int) string
}

func (d *Dialect) placeholders(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		if d.Placeholder != nil {
			b.WriteString(d.Placeholder(i))
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// ExecCall renders the invocation used for calls that do not return
// rows.
func (d *Dialect) ExecCall(procedure string, n int) string {
	return "CALL " + procedure + "(" + d.placeholders(n) + ")"
}

// QueryCall renders the invocation used for row-returning calls.
func (d *Dialect) QueryCall(procedure string, n int) string {
	if d.QueryFromSelect {
		return "SELECT * FROM " + procedure + "(" + d.placeholders(n) + ")"
	}
	return d.ExecCall(procedure, n)
}

// Standard returns the fallback dialect: CALL with ? placeholders and
// positional arguments.
func Standard() *Dialect {
	return &Dialect{Name: "standard"}
}
