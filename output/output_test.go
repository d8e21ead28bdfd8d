package output_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvistgaard/cubex/core"
	"github.com/kvistgaard/cubex/core/format"
	"github.com/kvistgaard/cubex/output"
)

func makeRecords() *core.RecordSet {
	return core.FormatRecords(&core.ExtractionResult{
		Rows: []core.Row{
			{{Text: "first"}},
			{{Text: "second"}},
		},
		Metadata: core.Metadata{
			Dimensions: []core.ColumnDescriptor{{Name: "name", Type: core.ColumnTypeDimension}},
		},
	})
}

func TestBuffer(t *testing.T) {
	r := require.New(t)

	buffer := output.NewBuffer(format.NewCSV())
	r.NoError(buffer.Write(makeRecords()))

	r.Equal("name\nfirst\nsecond\n", string(buffer.Bytes()))
}

func TestFile(t *testing.T) {
	r := require.New(t)

	fileName := filepath.Join(t.TempDir(), "records.csv")

	file := output.NewFile(fileName, format.NewCSV(), core.NewLogger(io.Discard))
	r.NoError(file.Write(makeRecords()))

	content, err := os.ReadFile(fileName)
	r.NoError(err)
	r.Equal("name\nfirst\nsecond\n", string(content))
}
