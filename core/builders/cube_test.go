package builders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvistgaard/cubex/core"
	"github.com/kvistgaard/cubex/core/builders"
)

func TestCubeBuilder(t *testing.T) {
	r := require.New(t)

	descriptor := &core.CubeDescriptor{
		Dimensions:   []core.ColumnDescriptor{{Name: "name"}},
		TotalRows:    1,
		TotalColumns: 1,
	}

	released := 0
	cube := builders.NewCubeBuilder().
		WithDescriptor(descriptor).
		WithStraightFunc(func(_ context.Context, window core.Window) ([]core.Row, error) {
			return []core.Row{{core.Cell{Text: "only"}}}, nil
		}).
		WithReleaseFunc(func() { released++ }).
		Build()

	got, err := cube.Descriptor(context.Background())
	r.NoError(err)
	r.Equal(descriptor, got)

	rows, err := cube.FetchStraight(context.Background(), core.Window{Height: 1, Width: 1})
	r.NoError(err)
	r.Len(rows, 1)

	// modes without a fetch function answer with a layout fault
	_, err = cube.FetchPivot(context.Background(), core.Window{Height: 1, Width: 1})
	var fault *core.Fault
	r.True(errors.As(err, &fault))
	r.Equal(core.FaultLayout, fault.Kind())

	// release runs at most once
	cube.Release()
	cube.Release()
	r.Equal(1, released)
}
