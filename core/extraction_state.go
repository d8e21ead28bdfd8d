package core

type ExtractionState int

const (
	ExtractionStateUnknown ExtractionState = iota
	ExtractionStateFetching
	ExtractionStateAssembled
	ExtractionStateFailed
	ExtractionStateCanceled
)

func (s ExtractionState) String() string {
	switch s {
	case ExtractionStateFetching:
		return "fetching"
	case ExtractionStateAssembled:
		return "assembled"
	case ExtractionStateFailed:
		return "failed"
	case ExtractionStateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}
