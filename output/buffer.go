package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kvistgaard/cubex/core"
)

var _ Writer = (*Buffer)(nil)

// Buffer keeps the formatted output in memory.
type Buffer struct {
	formatter core.Formatter
	buffer    bytes.Buffer
}

func NewBuffer(formatter core.Formatter) *Buffer {
	return &Buffer{
		formatter: formatter,
	}
}

func (b *Buffer) Write(records *core.RecordSet) error {
	out, err := b.formatter.Format(records)
	if err != nil {
		return fmt.Errorf("failed to format records as %s: %w", b.formatter.Name(), err)
	}

	b.buffer.Reset()
	b.buffer.Write(out)
	return nil
}

// WriteTo flushes the buffered output to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	return b.buffer.WriteTo(w)
}

func (b *Buffer) Bytes() []byte {
	return b.buffer.Bytes()
}
