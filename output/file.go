package output

import (
	"fmt"
	"os"

	"github.com/kvistgaard/cubex/core"
)

var _ Writer = (*File)(nil)

type File struct {
	fileName  string
	formatter core.Formatter
	log       core.Logger
}

func NewFile(fileName string, formatter core.Formatter, logger core.Logger) *File {
	return &File{
		fileName:  fileName,
		formatter: formatter,
		log:       logger,
	}
}

func (f *File) Write(records *core.RecordSet) error {
	out, err := f.formatter.Format(records)
	if err != nil {
		return fmt.Errorf("failed to format records as %s: %w", f.formatter.Name(), err)
	}

	err = os.WriteFile(f.fileName, out, 0o644)
	if err != nil {
		return err
	}

	f.log.Infof("successfully saved %s to %s", f.formatter.Name(), f.fileName)
	return nil
}
