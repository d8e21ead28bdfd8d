package mock

import (
	"fmt"

	"github.com/kvistgaard/cubex/core"
)

// NewRows returns deterministic rows in form of:
//
//	{ "row_<index>"(dimension), <index*100+column>(measure), ... }
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to, width int) []core.Row {
	var rows []core.Row

	for i := from; i < to; i++ {
		row := make(core.Row, 0, width)
		row = append(row, core.Cell{
			Text:  fmt.Sprintf("row_%d", i),
			State: core.CellStateOptional,
		})

		for j := 1; j < width; j++ {
			value := float64(i*100 + j)
			row = append(row, core.Cell{
				Text:   fmt.Sprintf("%g", value),
				Number: &value,
				State:  core.CellStateOptional,
			})
		}

		rows = append(rows, row)
	}

	return rows
}

// DescriptorFor derives a cube descriptor from the first row: cells
// carrying a numeric value become measures, the rest dimensions.
func DescriptorFor(rows []core.Row, layout core.LayoutMode) *core.CubeDescriptor {
	descriptor := &core.CubeDescriptor{
		TotalRows: len(rows),
		Layout:    layout,
	}

	if len(rows) == 0 {
		return descriptor
	}

	for i, cell := range rows[0] {
		if cell.Number != nil {
			descriptor.Measures = append(descriptor.Measures, core.ColumnDescriptor{
				Name: fmt.Sprintf("measure_%d", i),
				Type: core.ColumnTypeMeasure,
			})
			continue
		}
		descriptor.Dimensions = append(descriptor.Dimensions, core.ColumnDescriptor{
			Name: fmt.Sprintf("dimension_%d", i),
			Type: core.ColumnTypeDimension,
		})
	}
	descriptor.TotalColumns = descriptor.ColumnCount()

	return descriptor
}
