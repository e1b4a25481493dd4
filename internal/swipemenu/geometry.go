package swipemenu

import "math"

// Direction is the side a transition moves toward.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// step returns +1 for Forward and -1 for Reverse.
func (d Direction) step() int {
	if d == Reverse {
		return -1
	}
	return 1
}

// directionFor picks the animation direction for moving from one index to another.
func directionFor(from, to int) Direction {
	if to > from {
		return Forward
	}
	return Reverse
}

// Frame is a horizontal span in strip content coordinates (columns).
type Frame struct {
	X     float64
	Width float64
}

// MaxX is the right edge of the frame.
func (f Frame) MaxX() float64 { return f.X + f.Width }

// Inset shrinks the frame by in on each side, never below zero width.
func (f Frame) Inset(in Insets) Frame {
	w := f.Width - float64(in.Left+in.Right)
	if w < 0 {
		w = 0
	}
	return Frame{X: f.X + float64(in.Left), Width: w}
}

// Cells returns the half-open column range [start, end) the frame covers
// when rasterised to whole cells.
func (f Frame) Cells() (start, end int) {
	return int(math.Round(f.X)), int(math.Round(f.MaxX()))
}

// lerpFrame interpolates between a and b; t is clamped to [0,1].
func lerpFrame(a, b Frame, t float64) Frame {
	t = clamp01(t)
	return Frame{X: lerp(a.X, b.X, t), Width: lerp(a.Width, b.Width, t)}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// easeOutCubic is monotonic on [0,1] with easeOutCubic(0)=0 and (1)=1.
func easeOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}
