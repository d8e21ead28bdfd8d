package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type (
	ExtractionID string

	// Extraction is a single background extraction run with a state
	// machine, a cancelation function and an assembled result.
	Extraction struct {
		id        ExtractionID
		objectID  string
		state     ExtractionState
		timeTaken time.Duration
		timestamp time.Time

		result     *ExtractionResult
		cancelFunc func()

		// any error that occurred before or during the run
		err  error
		done chan struct{}
	}
)

// StartExtraction runs an extraction in the background, reporting state
// transitions through onEvent. Cancel is honored between pages.
func StartExtraction(handle CubeHandle, objectID string, opts *Options, onEvent func(ExtractionState, *Extraction)) *Extraction {
	e := &Extraction{
		id:       ExtractionID(uuid.New().String()),
		objectID: objectID,
		state:    ExtractionStateUnknown,

		done: make(chan struct{}),
	}

	eventsCh := make(chan ExtractionState, 10)

	ctx, cancel := context.WithCancel(context.Background())
	e.timestamp = time.Now()
	e.cancelFunc = cancel

	// event handler
	go func() {
		for state := range eventsCh {
			if e.state == ExtractionStateFailed || e.state == ExtractionStateCanceled {
				return
			}
			e.state = state

			if onEvent != nil {
				onEvent(state, e)
			}
		}
	}()

	go func() {
		defer close(eventsCh)
		defer close(e.done)

		eventsCh <- ExtractionStateFetching

		descriptor, err := handle.Descriptor(ctx)
		if err != nil {
			e.timeTaken = time.Since(e.timestamp)
			e.err = err
			eventsCh <- ExtractionStateFailed
			return
		}

		result, err := Extract(ctx, handle, descriptor, opts)
		e.timeTaken = time.Since(e.timestamp)
		if err != nil {
			e.err = err
			eventsCh <- ExtractionStateFailed
			return
		}

		e.result = result
		if result.Metadata.Reason == ReasonCanceled {
			eventsCh <- ExtractionStateCanceled
			return
		}
		eventsCh <- ExtractionStateAssembled
	}()

	return e
}

func (e *Extraction) GetID() ExtractionID {
	return e.id
}

func (e *Extraction) GetObjectID() string {
	return e.objectID
}

func (e *Extraction) GetState() ExtractionState {
	return e.state
}

func (e *Extraction) GetTimeTaken() time.Duration {
	return e.timeTaken
}

func (e *Extraction) GetTimestamp() time.Time {
	return e.timestamp
}

func (e *Extraction) Err() error {
	return e.err
}

// Done returns a channel that is closed when the extraction finishes.
func (e *Extraction) Done() chan struct{} {
	return e.done
}

// Cancel requests cancelation. Rows gathered so far stay available on the
// result.
func (e *Extraction) Cancel() {
	if e.cancelFunc != nil {
		e.cancelFunc()
	}
}

// Result returns the assembled result, nil until the extraction is done.
func (e *Extraction) Result() *ExtractionResult {
	return e.result
}
