package builders

import (
	"context"
	"database/sql"
	"fmt"
)

// Client is the default sql client used by the session adapters.
type Client struct {
	db *sql.DB
}

func NewClient(db *sql.DB) *Client {
	return &Client{db: db}
}

func (c *Client) Close() {
	c.db.Close()
}

func (c *Client) Swap(db *sql.DB) {
	c.db.Close()
	c.db = db
}

// QueryResult is a fully drained query result. Column names and database
// type names are present even when no rows matched.
type QueryResult struct {
	Columns []string
	Types   []string
	Values  [][]any
}

// QueryRows executes a query and drains it. Byte slices are converted to
// strings.
func (c *Client) QueryRows(ctx context.Context, query string, args ...any) (*QueryResult, error) {
	dbRows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db.QueryContext: %w", err)
	}
	defer dbRows.Close()

	columns, err := dbRows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dbRows.Columns: %w", err)
	}

	types := make([]string, len(columns))
	dbTypes, err := dbRows.ColumnTypes()
	if err == nil {
		for i, t := range dbTypes {
			types[i] = t.DatabaseTypeName()
		}
	}

	result := &QueryResult{
		Columns: columns,
		Types:   types,
	}

	for dbRows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := dbRows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("dbRows.Scan: %w", err)
		}

		for i, val := range values {
			if b, ok := val.([]byte); ok {
				values[i] = string(b)
			}
		}

		result.Values = append(result.Values, values)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("dbRows.Err: %w", err)
	}

	return result, nil
}

// QueryValue executes a query and returns the first value of the first row.
func (c *Client) QueryValue(ctx context.Context, query string, args ...any) (any, error) {
	result, err := c.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if len(result.Values) < 1 || len(result.Values[0]) < 1 {
		return nil, fmt.Errorf("query returned no value: %s", query)
	}

	return result.Values[0][0], nil
}
