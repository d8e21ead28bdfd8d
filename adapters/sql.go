package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/kvistgaard/cubex/core"
	"github.com/kvistgaard/cubex/core/builders"
)

var (
	_ core.Session  = (*sqlSession)(nil)
	_ core.Selector = (*sqlSession)(nil)
)

// placeholderFunc renders the bind placeholder for the i-th argument
// (1-based), papering over dialect differences.
type placeholderFunc func(i int) string

// sqlSession serves straight-layout cubes from a local SQL engine: the
// object id is a table name, selections become equality predicates on
// subsequently opened cubes.
type sqlSession struct {
	c           *builders.Client
	placeholder placeholderFunc

	mu         sync.Mutex
	fields     []string
	selections map[string]string
}

func newSQLSession(db *sql.DB, placeholder placeholderFunc) *sqlSession {
	return &sqlSession{
		c:           builders.NewClient(db),
		placeholder: placeholder,
		selections:  make(map[string]string),
	}
}

// ApplySelection restricts the field to a single value, replacing any
// previous selection on the same field.
func (s *sqlSession) ApplySelection(_ context.Context, field, value string) error {
	if err := validateIdentifier(field); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selections[field]; !ok {
		s.fields = append(s.fields, field)
	}
	s.selections[field] = value

	return nil
}

// wherePredicate renders active selections into a WHERE clause with bind
// arguments, in selection order.
func (s *sqlSession) wherePredicate() (string, []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.fields) == 0 {
		return "", nil
	}

	predicates := make([]string, 0, len(s.fields))
	args := make([]any, 0, len(s.fields))
	for i, field := range s.fields {
		predicates = append(predicates, fmt.Sprintf("%q = %s", field, s.placeholder(i+1)))
		args = append(args, s.selections[field])
	}

	return " WHERE " + strings.Join(predicates, " AND "), args
}

func (s *sqlSession) OpenCube(ctx context.Context, objectID string) (core.CubeHandle, error) {
	if err := validateIdentifier(objectID); err != nil {
		return nil, err
	}

	where, args := s.wherePredicate()

	total, err := s.c.QueryValue(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", objectID)+where, args...)
	if err != nil {
		return nil, fmt.Errorf("counting rows: %w", err)
	}
	totalRows, err := toInt(total)
	if err != nil {
		return nil, fmt.Errorf("counting rows: %w", err)
	}

	shape, err := s.c.QueryRows(ctx, fmt.Sprintf("SELECT * FROM %q LIMIT 0", objectID))
	if err != nil {
		return nil, fmt.Errorf("describing columns: %w", err)
	}
	if len(shape.Columns) == 0 {
		return nil, fmt.Errorf("object has no columns: %s", objectID)
	}

	// LIMIT/OFFSET paging needs a total order - the first column alone may
	// repeat across page boundaries, duplicating or skipping rows
	orderColumns := make([]string, 0, len(shape.Columns))
	for _, column := range shape.Columns {
		orderColumns = append(orderColumns, fmt.Sprintf("%q", column))
	}
	order := " ORDER BY " + strings.Join(orderColumns, ", ")

	descriptor := &core.CubeDescriptor{
		TotalRows: totalRows,
		Layout:    core.LayoutStraight,
	}
	measureColumns := make(map[int]bool, len(shape.Columns))
	for i, column := range shape.Columns {
		if isNumericType(shape.Types[i]) {
			measureColumns[i] = true
			descriptor.Measures = append(descriptor.Measures, core.ColumnDescriptor{
				Name: column,
				Type: core.ColumnTypeMeasure,
			})
			continue
		}
		descriptor.Dimensions = append(descriptor.Dimensions, core.ColumnDescriptor{
			Name: column,
			Type: core.ColumnTypeDimension,
		})
	}
	descriptor.TotalColumns = descriptor.ColumnCount()

	fetch := func(ctx context.Context, window core.Window) ([]core.Row, error) {
		query := fmt.Sprintf("SELECT * FROM %q", objectID) + where + order +
			fmt.Sprintf(" LIMIT %d OFFSET %d", window.Height, window.Top)

		result, err := s.c.QueryRows(ctx, query, args...)
		if err != nil {
			return nil, core.WrapFault(err)
		}

		return s.toCells(result, shape.Columns, measureColumns, window), nil
	}

	return builders.NewCubeBuilder().
		WithDescriptor(descriptor).
		WithStraightFunc(fetch).
		Build(), nil
}

// toCells converts raw values to cells, clipped to the window's column
// range. Dimension values matching an active selection are marked
// selected.
func (s *sqlSession) toCells(result *builders.QueryResult, columns []string, measureColumns map[int]bool, window core.Window) []core.Row {
	s.mu.Lock()
	selections := make(map[string]string, len(s.selections))
	for k, v := range s.selections {
		selections[k] = v
	}
	s.mu.Unlock()

	rows := make([]core.Row, 0, len(result.Values))
	for _, values := range result.Values {
		right := window.Left + window.Width
		if right > len(values) {
			right = len(values)
		}

		row := make(core.Row, 0, window.Width)
		for i := window.Left; i < right; i++ {
			cell := core.Cell{
				Text:  fmt.Sprint(values[i]),
				State: core.CellStateOptional,
			}
			if values[i] == nil {
				cell.Text = ""
			}

			if measureColumns[i] {
				if number, err := toFloat(values[i]); err == nil {
					cell.Number = &number
				}
			} else if value, ok := selections[columns[i]]; ok && value == cell.Text {
				cell.State = core.CellStateSelected
			}

			row = append(row, cell)
		}

		rows = append(rows, row)
	}

	return rows
}

func (s *sqlSession) Close() {
	s.c.Close()
}

func validateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("empty identifier")
	}
	if strings.ContainsAny(name, `"';`) {
		return fmt.Errorf("invalid identifier: %s", name)
	}
	return nil
}

func isNumericType(typ string) bool {
	switch strings.ToUpper(typ) {
	case "INT", "INTEGER", "TINYINT", "SMALLINT", "BIGINT", "INT2", "INT4", "INT8",
		"REAL", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "DOUBLE PRECISION",
		"NUMERIC", "DECIMAL", "NUMBER":
		return true
	default:
		return false
	}
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("not an integer: %v", value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("not a number: %v", value)
	}
}
