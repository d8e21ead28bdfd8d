package core

// Formatter converts a record set to bytes.
type Formatter interface {
	Format(records *RecordSet) ([]byte, error)
	Name() string
}
