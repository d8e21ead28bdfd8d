package core

// Header is one column of a formatted record set.
type Header struct {
	Name  string     `json:"name"`
	Type  ColumnType `json:"type"`
	Index int        `json:"index"`
}

// Field is one exported cell value.
type Field struct {
	Text   string   `json:"text"`
	Number *float64 `json:"number,omitempty"`
	State  string   `json:"state"`
}

// Record is one exported row, fields keyed by header name.
type Record struct {
	Index  int              `json:"index"`
	Fields map[string]Field `json:"fields"`
}

type Summary struct {
	TotalRows      int `json:"total_rows"`
	TotalColumns   int `json:"total_columns"`
	DimensionCount int `json:"dimension_count"`
	MeasureCount   int `json:"measure_count"`
}

// RecordSet is the exportable form of an extraction result. It is built
// once and never mutated.
type RecordSet struct {
	Headers []Header `json:"headers"`
	Records []Record `json:"records"`
	Summary Summary  `json:"summary"`
}

// FormatRecords maps the raw matrix and column metadata into a record set
// ready for export. Pure function, no I/O.
//
// Headers are dimensions first, then measures, each with its positional
// index. A row shorter than the header list is tolerated - the missing
// trailing fields are omitted.
func FormatRecords(result *ExtractionResult) *RecordSet {
	meta := result.Metadata

	headers := make([]Header, 0, len(meta.Dimensions)+len(meta.Measures))
	for _, d := range meta.Dimensions {
		headers = append(headers, Header{
			Name:  d.Name,
			Type:  ColumnTypeDimension,
			Index: len(headers),
		})
	}
	for _, m := range meta.Measures {
		headers = append(headers, Header{
			Name:  m.Name,
			Type:  ColumnTypeMeasure,
			Index: len(headers),
		})
	}

	records := make([]Record, 0, len(result.Rows))
	for i, row := range result.Rows {
		fields := make(map[string]Field, len(headers))
		for j, header := range headers {
			if j >= len(row) {
				break
			}
			fields[header.Name] = Field{
				Text:   row[j].Text,
				Number: row[j].Number,
				State:  row[j].State.String(),
			}
		}

		records = append(records, Record{
			Index:  i,
			Fields: fields,
		})
	}

	// counts are derived from what was actually produced
	dimensions := 0
	measures := 0
	for _, h := range headers {
		if h.Type == ColumnTypeMeasure {
			measures++
		} else {
			dimensions++
		}
	}

	return &RecordSet{
		Headers: headers,
		Records: records,
		Summary: Summary{
			TotalRows:      len(records),
			TotalColumns:   len(headers),
			DimensionCount: dimensions,
			MeasureCount:   measures,
		},
	}
}
