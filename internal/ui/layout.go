package ui

// Layout arranges panels and defines focus order.
type Layout interface {
	Panels() []Panel
	FocusOrder() []string // Tab order for focus
}

// NewFocusManager returns a FocusManager cycling through l's focus order,
// starting at the first entry.
func NewFocusManager(l Layout) *FocusManager {
	order := l.FocusOrder()
	f := &FocusManager{Order: order}
	if len(order) > 0 {
		f.Current = order[0]
	}
	return f
}
