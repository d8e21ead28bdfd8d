package core

import "time"

const (
	DefaultPageSize = 1000
	DefaultMaxPages = 10
)

// Options configure a single extraction.
type Options struct {
	// PageSize is the desired window height per page.
	PageSize int
	// MaxPages caps the number of fetch attempts - the outer backstop
	// against unbounded loops.
	MaxPages int
	// StartRow and StartColumn set the window origin.
	StartRow    int
	StartColumn int
	// ColumnCount overrides the window width; 0 means full descriptor width.
	ColumnCount int
	// PageDelay is an optional pause between successful pages to avoid
	// overloading the engine.
	PageDelay time.Duration

	Classifier *Classifier
	Logger     Logger
}

// withDefaults returns a filled-in copy, leaving the original untouched.
func (o *Options) withDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}

	if out.PageSize < 1 {
		out.PageSize = DefaultPageSize
	}
	if out.MaxPages < 1 {
		out.MaxPages = DefaultMaxPages
	}
	if out.StartRow < 0 {
		out.StartRow = 0
	}
	if out.StartColumn < 0 {
		out.StartColumn = 0
	}
	if out.Classifier == nil {
		out.Classifier = DefaultClassifier()
	}
	if out.Logger == nil {
		out.Logger = nopLogger{}
	}

	return &out
}
