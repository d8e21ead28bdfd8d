package core

import (
	"context"
	"encoding/json"
)

type CellState int

const (
	CellStateOptional CellState = iota
	CellStateSelected
	CellStateExcluded
	CellStateLocked
	CellStateAlternative
)

func (s CellState) String() string {
	switch s {
	case CellStateSelected:
		return "selected"
	case CellStateOptional:
		return "optional"
	case CellStateExcluded:
		return "excluded"
	case CellStateLocked:
		return "locked"
	case CellStateAlternative:
		return "alternative"
	default:
		return "optional"
	}
}

type (
	// Cell is a single retrieved value. Number is nil for non-numeric cells.
	Cell struct {
		Text   string
		Number *float64
		State  CellState
	}

	// Row is one row of a fetched window.
	Row []Cell
)

// LayoutMode determines which fetch call shape is valid for a cube.
type LayoutMode int

const (
	LayoutStraight LayoutMode = iota
	LayoutPivot
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutPivot:
		return "pivot"
	case LayoutStraight:
		return "straight"
	default:
		return "straight"
	}
}

// Flip returns the opposite layout mode.
func (m LayoutMode) Flip() LayoutMode {
	if m == LayoutPivot {
		return LayoutStraight
	}
	return LayoutPivot
}

type ColumnType int

const (
	ColumnTypeDimension ColumnType = iota
	ColumnTypeMeasure
)

func (t ColumnType) String() string {
	switch t {
	case ColumnTypeMeasure:
		return "measure"
	default:
		return "dimension"
	}
}

func (t ColumnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// ColumnDescriptor describes a single dimension or measure column.
type ColumnDescriptor struct {
	Name string
	Type ColumnType
}

// CubeDescriptor is an immutable metadata snapshot of a cube,
// obtained once per extraction.
type CubeDescriptor struct {
	Dimensions   []ColumnDescriptor
	Measures     []ColumnDescriptor
	TotalRows    int
	TotalColumns int
	Layout       LayoutMode
}

func (d *CubeDescriptor) ColumnCount() int {
	return len(d.Dimensions) + len(d.Measures)
}

// Validate checks internal consistency of the descriptor.
func (d *CubeDescriptor) Validate() error {
	if d.TotalRows < 0 || d.TotalColumns < 0 {
		return ErrMalformedDescriptor
	}
	if d.TotalColumns != d.ColumnCount() {
		return ErrMalformedDescriptor
	}
	return nil
}

type (
	// Session is a live connection to an analytic engine.
	Session interface {
		OpenCube(ctx context.Context, objectID string) (CubeHandle, error)
		Close()
	}

	// CubeHandle is a handle to a single cube object on the engine.
	// Fetch calls return at most window.Height rows - the server may
	// truncate near the data boundary, which is not an error.
	CubeHandle interface {
		Descriptor(ctx context.Context) (*CubeDescriptor, error)
		FetchPivot(ctx context.Context, window Window) ([]Row, error)
		FetchStraight(ctx context.Context, window Window) ([]Row, error)
		Release()
	}

	// Selector applies a single-value selection on a field, clearing any
	// prior selection on that field first.
	Selector interface {
		ApplySelection(ctx context.Context, field, value string) error
	}
)
