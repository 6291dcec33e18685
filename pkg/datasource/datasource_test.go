package datasource

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastack-labs/procdata/internal/testutil"
	"github.com/datastack-labs/procdata/pkg/core"
)

// newMockSource registers a mock database under a test-unique DSN and
// returns a DataSource bound to it. Every adapter call opens and
// closes its own handle against the shared mock connection.
func newMockSource(t *testing.T, dsn string) (*DataSource, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.NewWithDSN(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New("sqlmock", dsn, WithLogger(testutil.NewTestLogger(t))), mock
}

func TestDataSource_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("returns driver-reported affected rows", func(t *testing.T) {
		ds, mock := newMockSource(t, "exec_affected")
		mock.ExpectExec(regexp.QuoteMeta("CALL sp_update_counter()")).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectClose()

		affected, err := ds.Execute(ctx, "sp_update_counter")
		require.NoError(t, err)
		assert.Equal(t, int64(3), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("passes parameters in order", func(t *testing.T) {
		ds, mock := newMockSource(t, "exec_params")
		mock.ExpectExec(regexp.QuoteMeta("CALL sp_set_flag(?, ?)")).
			WithArgs("banner", true).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectClose()

		affected, err := ds.Execute(ctx, "sp_set_flag",
			core.Input("name", "banner"),
			core.Input("enabled", true))
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates execution failure", func(t *testing.T) {
		ds, mock := newMockSource(t, "exec_fail")
		mock.ExpectExec(regexp.QuoteMeta("CALL sp_broken()")).
			WillReturnError(assert.AnError)
		mock.ExpectClose()

		_, err := ds.Execute(ctx, "sp_broken")
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to execute procedure sp_broken")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDataSource_Table(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves row and column order", func(t *testing.T) {
		ds, mock := newMockSource(t, "table_order")
		rows := sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(int64(1), "alice", "alice@example.com").
			AddRow(int64(2), "bob", "bob@example.com")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_list_users()")).
			WillReturnRows(rows)
		mock.ExpectClose()

		tbl, err := ds.Table(ctx, "sp_list_users")
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name", "email"}, tbl.Columns)
		require.Len(t, tbl.Rows, 2)
		require.Len(t, tbl.Rows[0], 3)

		id, err := tbl.Rows[0][0].Int64()
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		name, err := tbl.Rows[1][1].Text()
		require.NoError(t, err)
		assert.Equal(t, "bob", name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result set keeps columns", func(t *testing.T) {
		ds, mock := newMockSource(t, "table_empty")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_list_users()")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
		mock.ExpectClose()

		tbl, err := ds.Table(ctx, "sp_list_users")
		require.NoError(t, err)
		assert.True(t, tbl.Empty())
		assert.Equal(t, []string{"id", "name"}, tbl.Columns)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates query failure", func(t *testing.T) {
		ds, mock := newMockSource(t, "table_fail")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_list_users()")).
			WillReturnError(assert.AnError)
		mock.ExpectClose()

		_, err := ds.Table(ctx, "sp_list_users")
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDataSource_Data(t *testing.T) {
	ctx := context.Background()

	t.Run("returns result sets in driver order", func(t *testing.T) {
		ds, mock := newMockSource(t, "data_multi")
		first := sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2))
		second := sqlmock.NewRows([]string{"total", "label"}).AddRow(int64(9), "all")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_report()")).
			WillReturnRows(first, second)
		mock.ExpectClose()

		sets, err := ds.Data(ctx, "sp_report")
		require.NoError(t, err)
		require.Len(t, sets, 2)

		assert.Equal(t, []string{"id"}, sets[0].Columns)
		require.Len(t, sets[0].Rows, 2)
		assert.Equal(t, []string{"total", "label"}, sets[1].Columns)
		require.Len(t, sets[1].Rows, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("single result set", func(t *testing.T) {
		ds, mock := newMockSource(t, "data_single")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_report()")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectClose()

		sets, err := ds.Data(ctx, "sp_report")
		require.NoError(t, err)
		require.Len(t, sets, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestScalar(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first column of first row", func(t *testing.T) {
		ds, mock := newMockSource(t, "scalar_value")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_count_items()")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))
		mock.ExpectClose()

		n, err := Scalar[int](ctx, ds, "sp_count_items")
		require.NoError(t, err)
		assert.Equal(t, 12, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result yields zero value", func(t *testing.T) {
		ds, mock := newMockSource(t, "scalar_empty")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_count_items()")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}))
		mock.ExpectClose()

		n, err := Scalar[int](ctx, ds, "sp_count_items")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null result yields zero value", func(t *testing.T) {
		ds, mock := newMockSource(t, "scalar_null")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_count_items()")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(nil))
		mock.ExpectClose()

		n, err := Scalar[int](ctx, ds, "sp_count_items")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("incompatible value is a coercion error", func(t *testing.T) {
		ds, mock := newMockSource(t, "scalar_coerce")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_count_items()")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow("not a number"))
		mock.ExpectClose()

		_, err := Scalar[int](ctx, ds, "sp_count_items")
		require.Error(t, err)
		var cerr *core.CoercionError
		assert.ErrorAs(t, err, &cerr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

type testUser struct {
	ID   int64
	Name string
}

func testUserSchema() *core.Schema[testUser] {
	return core.NewSchema[testUser]().
		Named("id", func(u *testUser, v core.Value) error {
			var err error
			u.ID, err = v.Int64()
			return err
		}).
		Named("name", func(u *testUser, v core.Value) error {
			var err error
			u.Name, err = v.Text()
			return err
		})
}

func TestRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("maps every row in order", func(t *testing.T) {
		ds, mock := newMockSource(t, "records_ok")
		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "alice").
			AddRow(int64(2), "bob")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_list_users()")).
			WillReturnRows(rows)
		mock.ExpectClose()

		users, err := Records[testUser](ctx, ds, "sp_list_users", testUserSchema())
		require.NoError(t, err)
		assert.Equal(t, []testUser{{ID: 1, Name: "alice"}, {ID: 2, Name: "bob"}}, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row that fails to map aborts", func(t *testing.T) {
		ds, mock := newMockSource(t, "records_badrow")
		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "alice").
			AddRow("oops", "bob")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_list_users()")).
			WillReturnRows(rows)
		mock.ExpectClose()

		_, err := Records[testUser](ctx, ds, "sp_list_users", testUserSchema())
		require.Error(t, err)
		var merr *core.MappingError
		assert.ErrorAs(t, err, &merr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("maps first row", func(t *testing.T) {
		ds, mock := newMockSource(t, "record_first")
		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(7), "carol").
			AddRow(int64(8), "dave")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_get_user(?)")).
			WithArgs(int64(7)).
			WillReturnRows(rows)
		mock.ExpectClose()

		u, err := Record[testUser](ctx, ds, "sp_get_user", testUserSchema(), core.Input("id", int64(7)))
		require.NoError(t, err)
		assert.Equal(t, testUser{ID: 7, Name: "carol"}, u)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows yields zero record", func(t *testing.T) {
		ds, mock := newMockSource(t, "record_empty")
		mock.ExpectQuery(regexp.QuoteMeta("CALL sp_get_user(?)")).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
		mock.ExpectClose()

		u, err := Record[testUser](ctx, ds, "sp_get_user", testUserSchema(), core.Input("id", int64(99)))
		require.NoError(t, err)
		assert.Equal(t, testUser{}, u)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNew_Options(t *testing.T) {
	ds := New("sqlmock", "opts_dsn")
	assert.Equal(t, "sqlmock", ds.Driver())

	// Unregistered drivers fall back to the standard dialect.
	assert.Equal(t, "standard", ds.dialect.Name)
}
