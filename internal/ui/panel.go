package ui

// BoundsFunc returns the panel's position and size given terminal dimensions.
// Returns x, y, width, height.
type BoundsFunc func(width, height int) (x, y, w, h int)

// Panel is a named region within a layout.
type Panel struct {
	ID     string
	Bounds BoundsFunc
}

// Contains reports whether the cell (px, py) falls inside the panel for a
// terminal of the given size.
func (p Panel) Contains(width, height, px, py int) bool {
	if p.Bounds == nil {
		return false
	}
	x, y, w, h := p.Bounds(width, height)
	return px >= x && px < x+w && py >= y && py < y+h
}

// Local translates (px, py) into panel-relative coordinates.
func (p Panel) Local(width, height, px, py int) (int, int) {
	if p.Bounds == nil {
		return px, py
	}
	x, y, _, _ := p.Bounds(width, height)
	return px - x, py - y
}

// PanelAt returns the first panel of l containing (px, py).
func PanelAt(l Layout, width, height, px, py int) (Panel, bool) {
	for _, p := range l.Panels() {
		if p.Contains(width, height, px, py) {
			return p, true
		}
	}
	return Panel{}, false
}
