package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kvistgaard/cubex/core"
)

var _ core.Formatter = (*Table)(nil)

type Table struct{}

func NewTable() *Table {
	return &Table{}
}

func (tf *Table) Name() string {
	return "table"
}

func (tf *Table) Format(records *core.RecordSet) ([]byte, error) {
	var tableHeader table.Row
	for _, h := range records.Headers {
		tableHeader = append(tableHeader, h.Name)
	}

	var tableRows []table.Row
	for _, record := range records.Records {
		row := make(table.Row, 0, len(records.Headers))
		for _, h := range records.Headers {
			row = append(row, record.Fields[h.Name].Text)
		}
		tableRows = append(tableRows, row)
	}

	t := table.NewWriter()
	t.AppendHeader(tableHeader)
	t.AppendRows(tableRows)
	t.AppendSeparator()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false

	return []byte(t.Render()), nil
}
