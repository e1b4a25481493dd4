package ui

// FocusManager tracks and rotates focus across panels.
type FocusManager struct {
	Current  string   // ID of the currently focused panel
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// Next advances focus to the next panel in order.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.rotate(1)
}

// Prev moves focus to the previous panel in order.
func (f *FocusManager) Prev() string {
	return f.rotate(-1)
}

// Is reports whether id currently has focus.
func (f *FocusManager) Is(id string) bool {
	return f != nil && f.Current == id
}

func (f *FocusManager) rotate(step int) string {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	idx := f.indexOf(f.Current)
	if idx < 0 && step < 0 {
		idx = 0
	}
	next := ((idx+step)%n + n) % n
	f.set(f.Order[next])
	return f.Current
}

// SetFocus sets focus to the given panel ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	if f.indexOf(id) < 0 {
		return false
	}
	f.set(id)
	return true
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}

func (f *FocusManager) indexOf(id string) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}
