package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/kvistgaard/cubex/core"
)

var _ core.Formatter = (*CSV)(nil)

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) Name() string {
	return "csv"
}

func (cf *CSV) Format(records *core.RecordSet) ([]byte, error) {
	data := make([][]string, 0, len(records.Records)+1)

	header := make([]string, 0, len(records.Headers))
	for _, h := range records.Headers {
		header = append(header, h.Name)
	}
	data = append(data, header)

	for _, record := range records.Records {
		row := make([]string, 0, len(records.Headers))
		for _, h := range records.Headers {
			row = append(row, record.Fields[h.Name].Text)
		}
		data = append(data, row)
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(data)
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}
