package mock

import (
	"time"

	"github.com/kvistgaard/cubex/core"
)

type cubeConfig struct {
	descriptor      *core.CubeDescriptor
	descriptorFault *core.Fault
	actualLayout    core.LayoutMode
	faults          []*core.Fault
	faultAlways     *core.Fault
	truncate        int
	fetchSleep      time.Duration
	onFetch         func(core.Window)
}

type CubeOption func(*cubeConfig)

func CubeWithDescriptor(descriptor *core.CubeDescriptor) CubeOption {
	return func(c *cubeConfig) {
		c.descriptor = descriptor
	}
}

func CubeWithDescriptorFault(fault *core.Fault) CubeOption {
	return func(c *cubeConfig) {
		c.descriptorFault = fault
	}
}

// CubeWithActualLayout sets the layout the cube really serves. A fetch in
// any other mode gets a layout fault.
func CubeWithActualLayout(mode core.LayoutMode) CubeOption {
	return func(c *cubeConfig) {
		c.actualLayout = mode
	}
}

// CubeWithFaultScript scripts the outcome of consecutive fetch attempts:
// one entry per attempt, nil meaning success. Attempts past the end of the
// script succeed.
func CubeWithFaultScript(faults ...*core.Fault) CubeOption {
	return func(c *cubeConfig) {
		c.faults = append(c.faults, faults...)
	}
}

// CubeWithFaultAlways makes every fetch fail with the given fault.
func CubeWithFaultAlways(fault *core.Fault) CubeOption {
	return func(c *cubeConfig) {
		c.faultAlways = fault
	}
}

// CubeWithTruncate caps how many rows the cube returns per fetch,
// regardless of the requested window height.
func CubeWithTruncate(rows int) CubeOption {
	return func(c *cubeConfig) {
		c.truncate = rows
	}
}

func CubeWithFetchSleep(d time.Duration) CubeOption {
	return func(c *cubeConfig) {
		c.fetchSleep = d
	}
}

// CubeWithOnFetch registers a hook invoked on every fetch that is about to
// succeed, before the page is returned.
func CubeWithOnFetch(fn func(core.Window)) CubeOption {
	return func(c *cubeConfig) {
		c.onFetch = fn
	}
}
