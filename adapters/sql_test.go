package adapters

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/kvistgaard/cubex/core"
)

func newMockSession(t *testing.T) (*sqlSession, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	session := newSQLSession(db, func(i int) string {
		return fmt.Sprintf("$%d", i)
	})

	return session, mock
}

func productColumns() *sqlmock.Rows {
	return sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("name").OfType("TEXT", ""),
		sqlmock.NewColumn("price").OfType("BIGINT", int64(0)),
	)
}

func TestSQLSession_OpenCube(t *testing.T) {
	r := require.New(t)

	session, mock := newMockSession(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(`SELECT \* FROM "products" LIMIT 0`).
		WillReturnRows(productColumns())

	handle, err := session.OpenCube(context.Background(), "products")
	r.NoError(err)
	defer handle.Release()

	descriptor, err := handle.Descriptor(context.Background())
	r.NoError(err)

	r.Equal(3, descriptor.TotalRows)
	r.Equal(2, descriptor.TotalColumns)
	r.Equal(core.LayoutStraight, descriptor.Layout)
	r.Len(descriptor.Dimensions, 1)
	r.Equal("name", descriptor.Dimensions[0].Name)
	r.Len(descriptor.Measures, 1)
	r.Equal("price", descriptor.Measures[0].Name)

	r.NoError(mock.ExpectationsWereMet())
}

func TestSQLSession_FetchStraight(t *testing.T) {
	r := require.New(t)

	session, mock := newMockSession(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`SELECT \* FROM "products" LIMIT 0`).
		WillReturnRows(productColumns())

	handle, err := session.OpenCube(context.Background(), "products")
	r.NoError(err)

	// every column participates in the ordering so pages never overlap
	mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY "name", "price" LIMIT 2 OFFSET 0`).
		WillReturnRows(productColumns().
			AddRow("apple", int64(2)).
			AddRow("pear", int64(3)))

	rows, err := handle.FetchStraight(context.Background(), core.Window{Height: 2, Width: 2})
	r.NoError(err)

	r.Len(rows, 2)
	r.Equal("apple", rows[0][0].Text)
	r.Nil(rows[0][0].Number)
	r.Equal("2", rows[0][1].Text)
	r.NotNil(rows[0][1].Number)
	r.Equal(2.0, *rows[0][1].Number)

	r.NoError(mock.ExpectationsWereMet())
}

func TestSQLSession_PivotFetchFaults(t *testing.T) {
	r := require.New(t)

	session, mock := newMockSession(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`SELECT \* FROM "products" LIMIT 0`).
		WillReturnRows(productColumns())

	handle, err := session.OpenCube(context.Background(), "products")
	r.NoError(err)

	// sql cubes only serve the straight layout
	_, err = handle.FetchPivot(context.Background(), core.Window{Height: 1, Width: 2})
	r.Error(err)

	var fault *core.Fault
	r.True(errors.As(err, &fault))
	r.Equal(core.FaultLayout, fault.Kind())
}

func TestSQLSession_Selections(t *testing.T) {
	r := require.New(t)

	session, mock := newMockSession(t)

	r.NoError(session.ApplySelection(context.Background(), "name", "banana"))
	// re-selecting the same field replaces the previous value
	r.NoError(session.ApplySelection(context.Background(), "name", "apple"))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "products" WHERE "name" = \$1`).
		WithArgs("apple").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`SELECT \* FROM "products" LIMIT 0`).
		WillReturnRows(productColumns())

	handle, err := session.OpenCube(context.Background(), "products")
	r.NoError(err)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE "name" = \$1 ORDER BY "name", "price" LIMIT 1 OFFSET 0`).
		WithArgs("apple").
		WillReturnRows(productColumns().AddRow("apple", int64(2)))

	rows, err := handle.FetchStraight(context.Background(), core.Window{Height: 1, Width: 2})
	r.NoError(err)

	r.Len(rows, 1)
	r.Equal(core.CellStateSelected, rows[0][0].State)

	r.NoError(mock.ExpectationsWereMet())
}

func TestSQLSession_InvalidIdentifier(t *testing.T) {
	r := require.New(t)

	session, _ := newMockSession(t)

	r.Error(session.ApplySelection(context.Background(), `na"me`, "x"))

	_, err := session.OpenCube(context.Background(), "products; DROP TABLE products")
	r.Error(err)
}
