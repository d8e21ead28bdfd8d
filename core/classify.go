package core

const (
	// DefaultMaxRetries bounds same-window retries of transient faults.
	DefaultMaxRetries = 3
	// DefaultMinWindowHeight is the floor a window can shrink to.
	DefaultMinWindowHeight = 10
)

type ActionKind int

const (
	ActionAbort ActionKind = iota
	ActionRetrySame
	ActionShrinkAndRetry
	ActionSwitchMode
)

func (k ActionKind) String() string {
	switch k {
	case ActionRetrySame:
		return "retry_same"
	case ActionShrinkAndRetry:
		return "shrink_and_retry"
	case ActionSwitchMode:
		return "switch_mode"
	default:
		return "abort"
	}
}

// Action is the classifier's decision for a failed fetch.
// Height is set only for ActionShrinkAndRetry.
type Action struct {
	Kind   ActionKind
	Height int
}

// Attempt is the per-window context the classifier decides over.
type Attempt struct {
	// Retries counts same-window retries already spent on this window.
	Retries int
	// ModeSwitched reports whether the one global mode switch was used.
	ModeSwitched bool
	// WindowHeight is the height of the failed window.
	WindowHeight int
}

// Classifier turns a fault and its attempt context into a recovery action.
// It is a pure decision function, no I/O.
type Classifier struct {
	MaxRetries      int
	MinWindowHeight int
}

func DefaultClassifier() *Classifier {
	return &Classifier{
		MaxRetries:      DefaultMaxRetries,
		MinWindowHeight: DefaultMinWindowHeight,
	}
}

func (c *Classifier) Classify(fault *Fault, attempt Attempt) Action {
	if fault == nil {
		return Action{Kind: ActionAbort}
	}

	switch fault.Kind() {
	case FaultTransient:
		if attempt.Retries < c.MaxRetries {
			return Action{Kind: ActionRetrySame}
		}

	case FaultCapacity:
		// a window already at the floor cannot shrink further
		if attempt.WindowHeight <= c.MinWindowHeight {
			return Action{Kind: ActionAbort}
		}
		height := attempt.WindowHeight / 2
		if height < c.MinWindowHeight {
			height = c.MinWindowHeight
		}
		return Action{Kind: ActionShrinkAndRetry, Height: height}

	case FaultLayout:
		// the mode switch is attempted at most once per extraction
		if !attempt.ModeSwitched {
			return Action{Kind: ActionSwitchMode}
		}
	}

	return Action{Kind: ActionAbort}
}
