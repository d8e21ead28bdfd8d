package output

import "github.com/kvistgaard/cubex/core"

// Writer pipes a formatted record set to a sink.
type Writer interface {
	Write(records *core.RecordSet) error
}
