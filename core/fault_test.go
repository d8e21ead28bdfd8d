package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvistgaard/cubex/core"
)

func TestFault_Kind(t *testing.T) {
	tests := []struct {
		fault *core.Fault
		want  core.FaultKind
	}{
		{core.NewFault(core.CodeAborted, "", "aborted"), core.FaultTransient},
		{core.NewFault(core.CodePayloadTooLarge, "", "too large"), core.FaultCapacity},
		{core.NewFault(core.CodeWrongLayout, "", "wrong layout"), core.FaultLayout},
		{core.NewFault(0, "Request aborted by engine", ""), core.FaultTransient},
		{core.NewFault(0, "max size exceeded", ""), core.FaultCapacity},
		{core.NewFault(0, "use pivot fetch instead", ""), core.FaultLayout},
		{core.NewFault(500, "internal error", ""), core.FaultFatal},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			require.Equal(t, tt.want, tt.fault.Kind())
		})
	}
}

func TestWrapFault(t *testing.T) {
	r := require.New(t)

	r.Nil(core.WrapFault(nil))

	// an existing fault passes through with hints intact
	original := core.NewFault(core.CodeAborted, "param", "message")
	wrapped := core.WrapFault(fmt.Errorf("fetch: %w", original))
	r.Equal(original, wrapped)

	// a plain error becomes a fatal fault
	plain := errors.New("connection reset")
	fault := core.WrapFault(plain)
	r.Equal(core.FaultFatal, fault.Kind())
	r.ErrorIs(fault, plain)
}
