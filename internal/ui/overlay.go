package ui

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal view drawn over the main view until a dismiss key arrives.
type Overlay struct {
	ID      string
	View    View
	Dismiss []string // Keys that dismiss (e.g. "esc", "q")
}

// IsDismissKey returns true if the given key string should dismiss this overlay.
func (o *Overlay) IsDismissKey(key string) bool {
	for _, d := range o.Dismiss {
		if d == key {
			return true
		}
	}
	return false
}

// OverlayStack manages a stack of overlays (topmost receives input first).
type OverlayStack struct {
	Stack []Overlay
}

// Push adds an overlay to the top of the stack.
func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

// Pop removes and returns the top overlay.
func (s *OverlayStack) Pop() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of overlays in the stack.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// Handle routes msg to the top overlay. A dismiss key pops the overlay.
// Returns handled=false when the stack is empty so the caller can route msg
// to the main view.
func (s *OverlayStack) Handle(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	if k, ok := msg.(tea.KeyMsg); ok && top.IsDismissKey(k.String()) {
		s.Pop()
		return nil, true
	}
	newView, cmd := top.View.Update(msg)
	top.View = newView
	return cmd, true
}
