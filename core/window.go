package core

import "fmt"

var ErrInvalidWindow = func(w Window) error {
	return fmt.Errorf("invalid extraction window: top %d left %d height %d width %d", w.Top, w.Left, w.Height, w.Width)
}

// Window is a single bounded fetch request: a rectangular subset of a cube.
// It is created and discarded per attempt, never persisted.
type Window struct {
	Top    int
	Left   int
	Height int
	Width  int
}

func (w Window) Validate() error {
	if w.Top < 0 || w.Left < 0 || w.Height < 1 || w.Width < 1 {
		return ErrInvalidWindow(w)
	}
	return nil
}
