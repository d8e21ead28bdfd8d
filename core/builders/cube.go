package builders

import (
	"context"
	"errors"
	"sync"

	"github.com/kvistgaard/cubex/core"
)

var _ core.CubeHandle = (*Cube)(nil)

// Cube fills the core.CubeHandle interface from closures. Fetch modes
// without a registered function answer with a layout fault, so a handle
// that only serves one layout behaves like an engine object in the other
// mode.
type Cube struct {
	descriptor    func(context.Context) (*core.CubeDescriptor, error)
	fetchPivot    func(context.Context, core.Window) ([]core.Row, error)
	fetchStraight func(context.Context, core.Window) ([]core.Row, error)
	release       func()
	once          sync.Once
}

func (c *Cube) Descriptor(ctx context.Context) (*core.CubeDescriptor, error) {
	return c.descriptor(ctx)
}

func (c *Cube) FetchPivot(ctx context.Context, window core.Window) ([]core.Row, error) {
	return c.fetchPivot(ctx, window)
}

func (c *Cube) FetchStraight(ctx context.Context, window core.Window) ([]core.Row, error) {
	return c.fetchStraight(ctx, window)
}

// Release runs the release callback at most once.
func (c *Cube) Release() {
	c.once.Do(c.release)
}

// CubeBuilder builds cube handles.
type CubeBuilder struct {
	descriptor    func(context.Context) (*core.CubeDescriptor, error)
	fetchPivot    func(context.Context, core.Window) ([]core.Row, error)
	fetchStraight func(context.Context, core.Window) ([]core.Row, error)
	release       func()
}

func NewCubeBuilder() *CubeBuilder {
	return &CubeBuilder{
		descriptor: func(context.Context) (*core.CubeDescriptor, error) {
			return nil, errors.New("no descriptor function provided")
		},
		fetchPivot: func(_ context.Context, _ core.Window) ([]core.Row, error) {
			return nil, core.NewFault(core.CodeWrongLayout, core.LayoutPivot.String(), "object is not in pivot layout")
		},
		fetchStraight: func(_ context.Context, _ core.Window) ([]core.Row, error) {
			return nil, core.NewFault(core.CodeWrongLayout, core.LayoutStraight.String(), "object is not in straight layout")
		},
		release: func() {},
	}
}

func (b *CubeBuilder) WithDescriptorFunc(fn func(context.Context) (*core.CubeDescriptor, error)) *CubeBuilder {
	b.descriptor = fn
	return b
}

func (b *CubeBuilder) WithDescriptor(descriptor *core.CubeDescriptor) *CubeBuilder {
	b.descriptor = func(context.Context) (*core.CubeDescriptor, error) {
		return descriptor, nil
	}
	return b
}

func (b *CubeBuilder) WithPivotFunc(fn func(context.Context, core.Window) ([]core.Row, error)) *CubeBuilder {
	b.fetchPivot = fn
	return b
}

func (b *CubeBuilder) WithStraightFunc(fn func(context.Context, core.Window) ([]core.Row, error)) *CubeBuilder {
	b.fetchStraight = fn
	return b
}

func (b *CubeBuilder) WithReleaseFunc(fn func()) *CubeBuilder {
	b.release = fn
	return b
}

func (b *CubeBuilder) Build() *Cube {
	return &Cube{
		descriptor:    b.descriptor,
		fetchPivot:    b.fetchPivot,
		fetchStraight: b.fetchStraight,
		release:       b.release,
		once:          sync.Once{},
	}
}
