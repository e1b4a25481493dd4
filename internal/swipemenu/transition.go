package swipemenu

import "go.opentelemetry.io/otel/trace"

// State is the orchestrator's transition state. Exactly one is active.
type State int

const (
	StateIdle State = iota
	// StateProgrammaticJump: Jump was called; placement is deferred to the next turn.
	StateProgrammaticJump
	// StateTabTap: the user tapped a tab.
	StateTabTap
	// StateGestureSwipe: a drag or swipe acquired a neighbour page.
	StateGestureSwipe
	// StateOrientationRelayout: a geometry-only layout pass is pending or running.
	StateOrientationRelayout
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProgrammaticJump:
		return "programmatic_jump"
	case StateTabTap:
		return "tab_tap"
	case StateGestureSwipe:
		return "gesture_swipe"
	case StateOrientationRelayout:
		return "orientation_relayout"
	default:
		return "unknown"
	}
}

// transition is the in-flight transition. The zero value is idle.
type transition struct {
	state    State
	from, to int
	// notified is set once WillChangeIndex has been sent for this transition.
	notified bool
	animated bool
	id       string
	span     trace.Span
}

type jumpRequest struct {
	index    int
	animated bool
}

// jumpMsg is the deferred placement step of a programmatic jump.
type jumpMsg struct {
	menu string
	gen  uint64
}
