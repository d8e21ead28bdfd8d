package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvistgaard/cubex/core"
)

func TestMetadata_PersistRoundTrip(t *testing.T) {
	r := require.New(t)

	metadata := core.Metadata{
		Dimensions:     []core.ColumnDescriptor{{Name: "region", Type: core.ColumnTypeDimension}},
		Measures:       []core.ColumnDescriptor{{Name: "sales", Type: core.ColumnTypeMeasure}},
		TotalRows:      100,
		TotalColumns:   2,
		ExtractedRows:  40,
		PagesProcessed: 4,
		Reason:         core.ReasonAborted,
		Fault:          core.NewFault(999, "", "access denied"),
	}

	data, err := json.Marshal(metadata)
	r.NoError(err)
	r.Contains(string(data), `"termination_reason":"aborted"`)

	var restored core.Metadata
	r.NoError(json.Unmarshal(data, &restored))

	r.Equal(core.ReasonAborted, restored.Reason)
	r.Equal(100, restored.TotalRows)
	r.Equal(40, restored.ExtractedRows)
	r.Equal(4, restored.PagesProcessed)

	// column descriptors are not persisted, the fault keeps its message
	r.Nil(restored.Dimensions)
	r.NotNil(restored.Fault)
	r.Contains(restored.Fault.Error(), "access denied")
}

func TestMetadata_PersistComplete(t *testing.T) {
	r := require.New(t)

	metadata := core.Metadata{TotalRows: 5, ExtractedRows: 5, Reason: core.ReasonComplete}

	data, err := json.Marshal(metadata)
	r.NoError(err)
	r.NotContains(string(data), "fault")

	var restored core.Metadata
	r.NoError(json.Unmarshal(data, &restored))
	r.Equal(core.ReasonComplete, restored.Reason)
	r.Nil(restored.Fault)
}
