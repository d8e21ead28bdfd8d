package adapters

import (
	"errors"
	"fmt"

	"github.com/kvistgaard/cubex/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no adapter registered for provided type alias")
)

// Adapter opens an engine session from a connection url.
type Adapter interface {
	Connect(url string) (core.Session, error)
}

// registeredAdapters holds implemented adapters - specific adapters
// register themselves in their init functions.
var registeredAdapters = make(map[string]Adapter)

// register registers a new adapter under the given type aliases
func register(adapter Adapter, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredAdapters[alias] = adapter
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) Connect(typ string, url string) (core.Session, error) {
	adapter, ok := registeredAdapters[typ]
	if !ok {
		return nil, ErrUnsupportedTypeAlias
	}

	session, err := adapter.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("adapter.Connect: %w", err)
	}

	return session, nil
}

func (*Mux) AddAdapter(typ string, adapter Adapter) error {
	return register(adapter, typ)
}
