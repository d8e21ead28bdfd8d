package format_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvistgaard/cubex/core"
	"github.com/kvistgaard/cubex/core/format"
	"github.com/kvistgaard/cubex/core/mock"
)

func makeRecords(t *testing.T) *core.RecordSet {
	t.Helper()

	cube := mock.NewCube(mock.NewRows(0, 3, 2))

	descriptor, err := cube.Descriptor(context.Background())
	require.NoError(t, err)

	result, err := core.Extract(context.Background(), cube, descriptor, nil)
	require.NoError(t, err)

	return core.FormatRecords(result)
}

func TestCSV(t *testing.T) {
	r := require.New(t)

	out, err := format.NewCSV().Format(makeRecords(t))
	r.NoError(err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	r.Len(lines, 4)
	r.Equal("dimension_0,measure_1", lines[0])
	r.Equal("row_0,1", lines[1])
	r.Equal("row_2,201", lines[3])
}

func TestCSV_QuotesEmbeddedSeparators(t *testing.T) {
	r := require.New(t)

	records := &core.RecordSet{
		Headers: []core.Header{{Name: "name", Type: core.ColumnTypeDimension, Index: 0}},
		Records: []core.Record{
			{Index: 0, Fields: map[string]core.Field{
				"name": {Text: `comma, and "quote"`},
			}},
		},
	}

	out, err := format.NewCSV().Format(records)
	r.NoError(err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	r.Equal(`"comma, and ""quote"""`, lines[1])
}

func TestJSON(t *testing.T) {
	r := require.New(t)

	out, err := format.NewJSON().Format(makeRecords(t))
	r.NoError(err)

	var decoded struct {
		Headers []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"headers"`
		Records []struct {
			Fields map[string]struct {
				Text string `json:"text"`
			} `json:"fields"`
		} `json:"records"`
		Summary struct {
			TotalRows int `json:"total_rows"`
		} `json:"summary"`
	}
	r.NoError(json.Unmarshal(out, &decoded))

	r.Len(decoded.Headers, 2)
	r.Equal("dimension", decoded.Headers[0].Type)
	r.Equal("measure", decoded.Headers[1].Type)
	r.Equal(3, decoded.Summary.TotalRows)
	r.Equal("row_1", decoded.Records[1].Fields["dimension_0"].Text)
}

func TestTable(t *testing.T) {
	r := require.New(t)

	out, err := format.NewTable().Format(makeRecords(t))
	r.NoError(err)

	rendered := string(out)
	r.Contains(rendered, "dimension_0")
	r.Contains(rendered, "row_2")
}
