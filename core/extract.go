package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

var ErrNilDescriptor = errors.New("nil cube descriptor")

// flight serializes extractions sharing a cube handle - pages of one cube
// are requested strictly one at a time.
type flight struct {
	sem  *semaphore.Weighted
	refs int
}

var (
	flightsMu sync.Mutex
	flights   = make(map[CubeHandle]*flight)
)

// acquireFlight blocks until the handle's single-flight slot is free. The
// returned release func gives the slot back and evicts the map entry once
// no extraction references the handle anymore.
func acquireFlight(ctx context.Context, handle CubeHandle) (func(), error) {
	flightsMu.Lock()
	f, ok := flights[handle]
	if !ok {
		f = &flight{sem: semaphore.NewWeighted(1)}
		flights[handle] = f
	}
	f.refs++
	flightsMu.Unlock()

	if err := f.sem.Acquire(ctx, 1); err != nil {
		releaseFlight(handle, f, false)
		return nil, err
	}

	return func() { releaseFlight(handle, f, true) }, nil
}

func releaseFlight(handle CubeHandle, f *flight, acquired bool) {
	if acquired {
		f.sem.Release(1)
	}

	flightsMu.Lock()
	defer flightsMu.Unlock()

	f.refs--
	if f.refs == 0 {
		delete(flights, handle)
	}
}

// fetchWindow issues exactly one bounded fetch against the cube handle,
// picking the call shape from the layout mode. Retries are the caller's
// responsibility.
func fetchWindow(ctx context.Context, handle CubeHandle, window Window, mode LayoutMode) ([]Row, *Fault) {
	if err := window.Validate(); err != nil {
		return nil, WrapFault(err)
	}

	var (
		rows []Row
		err  error
	)
	if mode == LayoutPivot {
		rows, err = handle.FetchPivot(ctx, window)
	} else {
		rows, err = handle.FetchStraight(ctx, window)
	}
	if err != nil {
		return nil, WrapFault(err)
	}

	return rows, nil
}

// extractState is owned exclusively by one extraction loop.
type extractState struct {
	rows      []Row
	cursor    int
	height    int
	attempted int
	succeeded int

	retries      int
	modeSwitched bool
}

// Extract runs one incremental extraction of the cube behind handle.
// The returned result is never nil on a nil error: a capped, aborted or
// canceled extraction still carries the rows gathered so far, with the
// outcome reported in the metadata.
//
// The caller owns the handle and releases it after the extraction.
func Extract(ctx context.Context, handle CubeHandle, descriptor *CubeDescriptor, opts *Options) (*ExtractionResult, error) {
	opts = opts.withDefaults()

	if descriptor == nil {
		return nil, ErrNilDescriptor
	}
	if opts.ColumnCount == 0 {
		if err := descriptor.Validate(); err != nil {
			return nil, err
		}
	}

	release, err := acquireFlight(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("acquireFlight: %w", err)
	}
	defer release()

	width := opts.ColumnCount
	if width == 0 {
		width = descriptor.TotalColumns
	}

	mode := descriptor.Layout
	state := &extractState{
		cursor: opts.StartRow,
		height: opts.PageSize,
	}

	reason := ReasonComplete
	var lastFault *Fault

loop:
	for state.cursor < descriptor.TotalRows {
		if state.attempted >= opts.MaxPages {
			reason = ReasonCapped
			break
		}
		if ctx.Err() != nil {
			reason = ReasonCanceled
			break
		}

		height := state.height
		if remaining := descriptor.TotalRows - state.cursor; height > remaining {
			height = remaining
		}
		window := Window{
			Top:    state.cursor,
			Left:   opts.StartColumn,
			Height: height,
			Width:  width,
		}

		state.attempted++
		page, fault := fetchWindow(ctx, handle, window, mode)

		if fault == nil {
			if len(page) == 0 {
				// a successful fetch with no rows would stall the cursor
				lastFault = NewFault(0, "", fmt.Sprintf("engine returned empty window at row %d", state.cursor))
				reason = ReasonAborted
				break
			}

			// advance by rows actually returned - the server may truncate
			state.rows = append(state.rows, page...)
			state.cursor += len(page)
			state.succeeded++
			state.retries = 0

			if opts.PageDelay > 0 && state.cursor < descriptor.TotalRows {
				if err := sleep(ctx, opts.PageDelay); err != nil {
					reason = ReasonCanceled
					break
				}
			}
			continue
		}

		if errors.Is(fault, context.Canceled) || errors.Is(fault, context.DeadlineExceeded) {
			reason = ReasonCanceled
			break
		}

		action := opts.Classifier.Classify(fault, Attempt{
			Retries:      state.retries,
			ModeSwitched: state.modeSwitched,
			WindowHeight: state.height,
		})

		switch action.Kind {
		case ActionRetrySame:
			state.retries++
			opts.Logger.Warnf("window at row %d failed, retry %d/%d: %s", state.cursor, state.retries, opts.Classifier.MaxRetries, fault)

		case ActionShrinkAndRetry:
			// shrink is sticky for the remainder of the extraction
			state.height = action.Height
			state.retries = 0
			opts.Logger.Warnf("window at row %d too large, shrinking to %d rows: %s", state.cursor, action.Height, fault)

		case ActionSwitchMode:
			mode = mode.Flip()
			state.modeSwitched = true
			state.retries = 0
			opts.Logger.Warnf("cube not in %s mode, switching to %s: %s", mode.Flip(), mode, fault)

		case ActionAbort:
			lastFault = fault
			reason = ReasonAborted
			opts.Logger.Errorf("extraction aborted at row %d: %s", state.cursor, fault)
			break loop
		}
	}

	return &ExtractionResult{
		Rows: state.rows,
		Metadata: Metadata{
			Dimensions:     descriptor.Dimensions,
			Measures:       descriptor.Measures,
			TotalRows:      descriptor.TotalRows,
			TotalColumns:   descriptor.TotalColumns,
			ExtractedRows:  len(state.rows),
			PagesProcessed: state.succeeded,
			Reason:         reason,
			Fault:          lastFault,
		},
	}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
