package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kvistgaard/cubex/core"
)

var _ core.CubeHandle = (*Cube)(nil)

// Cube is a scriptable in-memory cube handle.
type Cube struct {
	rows   []core.Row
	config *cubeConfig

	mu       sync.Mutex
	fetches  []core.Window
	faultIdx int
	released int
}

// NewCube returns a cube handle serving the provided rows. Without options
// the descriptor is derived from the first row (cells with a numeric value
// become measures) and the cube is in straight layout.
func NewCube(rows []core.Row, opts ...CubeOption) *Cube {
	config := &cubeConfig{
		descriptor:   DescriptorFor(rows, core.LayoutStraight),
		actualLayout: core.LayoutStraight,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Cube{
		rows:   rows,
		config: config,
	}
}

func (c *Cube) Descriptor(_ context.Context) (*core.CubeDescriptor, error) {
	if c.config.descriptorFault != nil {
		return nil, c.config.descriptorFault
	}
	return c.config.descriptor, nil
}

func (c *Cube) FetchPivot(ctx context.Context, window core.Window) ([]core.Row, error) {
	return c.fetch(ctx, window, core.LayoutPivot)
}

func (c *Cube) FetchStraight(ctx context.Context, window core.Window) ([]core.Row, error) {
	return c.fetch(ctx, window, core.LayoutStraight)
}

func (c *Cube) fetch(ctx context.Context, window core.Window, mode core.LayoutMode) ([]core.Row, error) {
	if c.config.fetchSleep > 0 {
		time.Sleep(c.config.fetchSleep)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fetches = append(c.fetches, window)

	// scripted faults are consumed first, one per attempt
	if c.faultIdx < len(c.config.faults) {
		fault := c.config.faults[c.faultIdx]
		c.faultIdx++
		if fault != nil {
			return nil, fault
		}
	} else if c.config.faultAlways != nil {
		return nil, c.config.faultAlways
	}

	if mode != c.config.actualLayout {
		return nil, core.NewFault(core.CodeWrongLayout, mode.String(), "object is not in "+mode.String()+" layout")
	}

	if c.config.onFetch != nil {
		c.config.onFetch(window)
	}

	from := window.Top
	if from > len(c.rows) {
		from = len(c.rows)
	}
	to := window.Top + window.Height
	if c.config.truncate > 0 && window.Height > c.config.truncate {
		to = window.Top + c.config.truncate
	}
	if to > len(c.rows) {
		to = len(c.rows)
	}

	page := make([]core.Row, 0, to-from)
	for _, row := range c.rows[from:to] {
		if window.Width < len(row) {
			row = row[:window.Width]
		}
		page = append(page, row)
	}

	return page, nil
}

func (c *Cube) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released++
}

// Fetches returns the windows requested so far, in order.
func (c *Cube) Fetches() []core.Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.Window{}, c.fetches...)
}

// Released returns how many times Release was called.
func (c *Cube) Released() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}
