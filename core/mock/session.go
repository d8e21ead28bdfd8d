package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/kvistgaard/cubex/core"
)

var (
	_ core.Session  = (*Session)(nil)
	_ core.Selector = (*Session)(nil)
)

// Session is an in-memory engine session serving registered cubes.
type Session struct {
	config *sessionConfig

	mu         sync.Mutex
	selections map[string]string
	closed     bool
}

type sessionConfig struct {
	cubes      map[string]*Cube
	openFaults map[string]*core.Fault
}

type SessionOption func(*sessionConfig)

func SessionWithCube(objectID string, cube *Cube) SessionOption {
	return func(c *sessionConfig) {
		_, ok := c.cubes[objectID]
		if ok {
			panic("cube already registered for object: " + objectID)
		}

		c.cubes[objectID] = cube
	}
}

func SessionWithOpenFault(objectID string, fault *core.Fault) SessionOption {
	return func(c *sessionConfig) {
		c.openFaults[objectID] = fault
	}
}

func NewSession(opts ...SessionOption) *Session {
	config := &sessionConfig{
		cubes:      make(map[string]*Cube),
		openFaults: make(map[string]*core.Fault),
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Session{
		config:     config,
		selections: make(map[string]string),
	}
}

func (s *Session) OpenCube(_ context.Context, objectID string) (core.CubeHandle, error) {
	if fault, ok := s.config.openFaults[objectID]; ok {
		return nil, fault
	}

	cube, ok := s.config.cubes[objectID]
	if !ok {
		return nil, fmt.Errorf("unknown object: %s", objectID)
	}

	return cube, nil
}

func (s *Session) ApplySelection(_ context.Context, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selections[field] = value
	return nil
}

// Selections returns the currently active selections, one value per field.
func (s *Session) Selections() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.selections))
	for k, v := range s.selections {
		out[k] = v
	}
	return out
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
