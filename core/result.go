package core

import "encoding/json"

// TerminationReason reports how an extraction loop ended. All four are
// normal, reportable outcomes, not errors.
type TerminationReason int

const (
	ReasonComplete TerminationReason = iota
	ReasonCapped
	ReasonAborted
	ReasonCanceled
)

func TerminationReasonFromString(s string) TerminationReason {
	switch s {
	case ReasonCapped.String():
		return ReasonCapped
	case ReasonAborted.String():
		return ReasonAborted
	case ReasonCanceled.String():
		return ReasonCanceled
	default:
		return ReasonComplete
	}
}

func (r TerminationReason) String() string {
	switch r {
	case ReasonComplete:
		return "complete"
	case ReasonCapped:
		return "capped"
	case ReasonAborted:
		return "aborted"
	case ReasonCanceled:
		return "canceled"
	default:
		return "complete"
	}
}

// Metadata describes what an extraction actually did. ExtractedRows may be
// lower than TotalRows on partial termination - callers must inspect Reason
// rather than assume a full result.
type Metadata struct {
	Dimensions   []ColumnDescriptor
	Measures     []ColumnDescriptor
	TotalRows    int
	TotalColumns int

	ExtractedRows  int
	PagesProcessed int
	Reason         TerminationReason

	// Fault holds the last fault for ReasonAborted, nil otherwise.
	Fault *Fault
}

// ExtractionResult is the assembled matrix plus extraction metadata.
// Rows are in strictly increasing original-row order.
type ExtractionResult struct {
	Rows     []Row
	Metadata Metadata
}

// Complete reports whether the whole cube was extracted.
func (r *ExtractionResult) Complete() bool {
	return r.Metadata.Reason == ReasonComplete &&
		r.Metadata.ExtractedRows == r.Metadata.TotalRows
}

// metadataPersistent is used for marshaling and unmarshaling the metadata
type metadataPersistent struct {
	TotalRows      int    `json:"total_rows"`
	TotalColumns   int    `json:"total_columns"`
	ExtractedRows  int    `json:"extracted_rows"`
	PagesProcessed int    `json:"pages_processed"`
	Reason         string `json:"termination_reason"`
	Fault          string `json:"fault,omitempty"`
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	faultMsg := ""
	if m.Fault != nil {
		faultMsg = m.Fault.Error()
	}

	return json.Marshal(&metadataPersistent{
		TotalRows:      m.TotalRows,
		TotalColumns:   m.TotalColumns,
		ExtractedRows:  m.ExtractedRows,
		PagesProcessed: m.PagesProcessed,
		Reason:         m.Reason.String(),
		Fault:          faultMsg,
	})
}

// UnmarshalJSON restores the persisted counters and reason. Column
// descriptors are not persisted, and a restored fault keeps only its
// message.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var persistent metadataPersistent
	if err := json.Unmarshal(data, &persistent); err != nil {
		return err
	}

	*m = Metadata{
		TotalRows:      persistent.TotalRows,
		TotalColumns:   persistent.TotalColumns,
		ExtractedRows:  persistent.ExtractedRows,
		PagesProcessed: persistent.PagesProcessed,
		Reason:         TerminationReasonFromString(persistent.Reason),
	}
	if persistent.Fault != "" {
		m.Fault = NewFault(0, "", persistent.Fault)
	}

	return nil
}
