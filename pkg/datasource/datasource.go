// Package datasource invokes stored procedures on a relational
// database and marshals results into tabular or typed-record forms.
//
// A DataSource owns nothing but an immutable connection descriptor.
// Every operation opens a fresh connection handle, issues exactly one
// stored-procedure invocation, and releases the handle before
// returning, on success or failure. Connection pooling, the wire
// protocol and transaction semantics belong to the underlying driver.
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/datastack-labs/procdata/pkg/core"
	"github.com/datastack-labs/procdata/pkg/dialect"
)

// DataSource invokes stored procedures on one database. It carries no
// mutable state across calls, so a single instance is safe for
// concurrent use.
type DataSource struct {
	driver  string
	dsn     string
	dialect *dialect.Dialect
	logger  *slog.Logger
}

// Option configures a DataSource.
type Option func(*DataSource)

// WithLogger sets the logger. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ds *DataSource) {
		if logger != nil {
			ds.logger = logger
		}
	}
}

// WithDialect overrides the call dialect resolved from the driver
// name.
func WithDialect(d *dialect.Dialect) Option {
	return func(ds *DataSource) {
		if d != nil {
			ds.dialect = d
		}
	}
}

// New creates a DataSource for the given database/sql driver name and
// connection string. The call dialect is resolved from the driver
// name; unregistered drivers get the standard CALL syntax.
func New(driver, dsn string, opts ...Option) *DataSource {
	ds := &DataSource{
		driver:  driver,
		dsn:     dsn,
		dialect: dialect.ForDriver(driver),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(ds)
	}
	return ds
}

// Driver returns the database/sql driver name.
func (ds *DataSource) Driver() string { return ds.driver }

func (ds *DataSource) open() (*sql.DB, error) {
	db, err := sql.Open(ds.driver, ds.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", ds.driver, err)
	}
	return db, nil
}

func driverArgs(params []core.Param, named bool) []any {
	if len(params) == 0 {
		return nil
	}
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p.Arg(named)
	}
	return args
}

// Execute invokes a stored procedure and returns the driver-reported
// number of affected rows.
func (ds *DataSource) Execute(ctx context.Context, procedure string, params ...core.Param) (int64, error) {
	db, err := ds.open()
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()

	call := ds.dialect.ExecCall(procedure, len(params))
	start := time.Now()

	res, err := db.ExecContext(ctx, call, driverArgs(params, ds.dialect.NamedArgs)...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute procedure %s: %w", procedure, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows for %s: %w", procedure, err)
	}

	ds.logger.Debug("executed procedure",
		slog.String("procedure", procedure),
		slog.Int("params", len(params)),
		slog.Int64("rows_affected", affected),
		slog.Duration("elapsed", time.Since(start)))
	return affected, nil
}

// Table invokes a stored procedure and materializes its single result
// set, preserving row and column order exactly as produced.
func (ds *DataSource) Table(ctx context.Context, procedure string, params ...core.Param) (*core.Table, error) {
	db, err := ds.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	call := ds.dialect.QueryCall(procedure, len(params))
	start := time.Now()

	rows, err := db.QueryContext(ctx, call, driverArgs(params, ds.dialect.NamedArgs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query procedure %s: %w", procedure, err)
	}
	defer func() { _ = rows.Close() }()

	t, err := readTable(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read result set of %s: %w", procedure, err)
	}

	ds.logger.Debug("queried procedure",
		slog.String("procedure", procedure),
		slog.Int("rows", len(t.Rows)),
		slog.Duration("elapsed", time.Since(start)))
	return t, nil
}

// Data invokes a stored procedure and materializes every result set it
// returns, in driver order, with row order preserved within each.
func (ds *DataSource) Data(ctx context.Context, procedure string, params ...core.Param) ([]*core.Table, error) {
	db, err := ds.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	call := ds.dialect.QueryCall(procedure, len(params))
	start := time.Now()

	rows, err := db.QueryContext(ctx, call, driverArgs(params, ds.dialect.NamedArgs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query procedure %s: %w", procedure, err)
	}
	defer func() { _ = rows.Close() }()

	var sets []*core.Table
	for {
		t, err := readTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read result set %d of %s: %w", len(sets), procedure, err)
		}
		sets = append(sets, t)
		if !rows.NextResultSet() {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read result sets of %s: %w", procedure, err)
	}

	ds.logger.Debug("queried procedure",
		slog.String("procedure", procedure),
		slog.Int("result_sets", len(sets)),
		slog.Duration("elapsed", time.Since(start)))
	return sets, nil
}
