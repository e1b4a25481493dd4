package swipemenu

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"swipemenu/internal/ui/textutil"
)

const (
	edgeMarkerLeft  = "‹"
	edgeMarkerRight = "›"
	ruleChar        = "─"
)

type tabItem struct {
	title    string
	frame    Frame
	emphasis float64 // 0 = normal text colour, 1 = selected text colour
}

// TabView is the horizontally scrollable strip of tab items. It owns the
// indicator and reports taps, but never decides selection on its own.
type TabView struct {
	opts   TabViewOptions
	insets Insets

	items        []tabItem
	selected     int
	indicator    Frame
	offset       float64
	width        int
	contentWidth int

	// OnSelect is called when the user taps an item.
	OnSelect func(index int)
	// OnStripScroll is called whenever the strip's scroll offset changes.
	OnStripScroll func(offset float64, contentWidth, visibleWidth int)
}

// NewTabView creates an empty strip. insets are the safe-area columns kept
// clear on each side.
func NewTabView(opts TabViewOptions, insets Insets) *TabView {
	return &TabView{opts: opts, insets: insets}
}

// Setup builds one item per page. A count of zero or less leaves the strip empty.
func (t *TabView) Setup(count int, title func(int) string) {
	t.Reset()
	if count <= 0 {
		return
	}
	t.items = make([]tabItem, count)
	for i := range t.items {
		if title != nil {
			t.items[i].title = title(i)
		}
	}
	t.layout()
	t.Select(0)
}

// Reset removes all items and clears the indicator. Safe to call repeatedly.
func (t *TabView) Reset() {
	t.items = nil
	t.selected = 0
	t.indicator = Frame{}
	t.contentWidth = 0
	t.setOffset(0)
}

// SetWidth lays the strip out for a new total width and re-snaps to the selection.
func (t *TabView) SetWidth(width int) {
	if width < 0 {
		width = 0
	}
	t.width = width
	if len(t.items) == 0 {
		return
	}
	t.layout()
	t.Select(t.selected)
}

// Select snaps indicator, emphasis and scroll position to index.
// Out-of-range indices are ignored.
func (t *TabView) Select(index int) {
	if index < 0 || index >= len(t.items) {
		return
	}
	t.selected = index
	t.indicator = t.indicatorFrame(index)
	for i := range t.items {
		t.items[i].emphasis = 0
	}
	t.items[index].emphasis = 1
	t.setOffset(t.focusOffset(index))
}

// MoveIndicator places the indicator between from and its neighbour in dir.
// ratio 0 rests on from, 1 rests on the neighbour. Only frame, offset and
// emphasis change; no relayout happens.
func (t *TabView) MoveIndicator(from int, ratio float64, dir Direction) {
	to := from + dir.step()
	if from < 0 || from >= len(t.items) || to < 0 || to >= len(t.items) {
		return
	}
	if !t.opts.AdditionView.IsAnimationOnSwipeEnable {
		return
	}
	ratio = clamp01(ratio)
	t.indicator = lerpFrame(t.indicatorFrame(from), t.indicatorFrame(to), ratio)
	t.setOffset(lerp(t.focusOffset(from), t.focusOffset(to), ratio))
	if t.opts.NeedsConvertTextColorRatio {
		for i := range t.items {
			t.items[i].emphasis = 0
		}
		t.items[from].emphasis = 1 - ratio
		t.items[to].emphasis = ratio
	}
}

// Tap hit-tests column x (relative to the strip's left edge) and reports the
// item under it through OnSelect. Returns the index, or -1 for a miss.
func (t *TabView) Tap(x int) int {
	idx := t.ItemAt(x)
	t.Activate(idx)
	return idx
}

// Activate reports index through OnSelect as if it had been tapped.
// Out-of-range indices are ignored.
func (t *TabView) Activate(index int) {
	if index < 0 || index >= len(t.items) || t.OnSelect == nil {
		return
	}
	t.OnSelect(index)
}

// ItemAt returns the item under column x, or -1.
func (t *TabView) ItemAt(x int) int {
	if x < t.insets.Left || x >= t.insets.Left+t.visibleWidth() {
		return -1
	}
	cx := float64(x-t.insets.Left) + math.Round(t.offset)
	for i, it := range t.items {
		if cx >= it.frame.X && cx < it.frame.MaxX() {
			return i
		}
	}
	return -1
}

// Count returns the number of items.
func (t *TabView) Count() int { return len(t.items) }

// Selected returns the selected item index.
func (t *TabView) Selected() int { return t.selected }

// IndicatorFrame returns the indicator's current frame in content coordinates.
func (t *TabView) IndicatorFrame() Frame { return t.indicator }

// ItemFrame returns the frame of item i in content coordinates.
func (t *TabView) ItemFrame(i int) (Frame, bool) {
	if i < 0 || i >= len(t.items) {
		return Frame{}, false
	}
	return t.items[i].frame, true
}

// RestingIndicatorFrame is the frame the indicator takes when item i is selected.
func (t *TabView) RestingIndicatorFrame(i int) (Frame, bool) {
	if i < 0 || i >= len(t.items) {
		return Frame{}, false
	}
	return t.indicatorFrame(i), true
}

// Emphasis returns item i's text emphasis in [0,1].
func (t *TabView) Emphasis(i int) float64 {
	if i < 0 || i >= len(t.items) {
		return 0
	}
	return t.items[i].emphasis
}

// Offset returns the strip scroll offset in columns.
func (t *TabView) Offset() float64 { return t.offset }

// ContentWidth returns the total laid-out width of all items plus margins.
func (t *TabView) ContentWidth() int { return t.contentWidth }

// Height returns the number of rows the strip renders.
func (t *TabView) Height() int { return max(t.opts.Height, 1) }

func (t *TabView) visibleWidth() int {
	return max(t.width-t.insets.Left-t.insets.Right, 0)
}

func (t *TabView) layout() {
	n := len(t.items)
	if n == 0 {
		t.contentWidth = 0
		return
	}
	margin := t.opts.Margin
	x := margin
	switch t.opts.Style {
	case StyleSegmented:
		avail := max(t.visibleWidth()-2*margin, n)
		base, rem := avail/n, avail%n
		for i := range t.items {
			w := base
			if i < rem {
				w++
			}
			t.items[i].frame = Frame{X: float64(x), Width: float64(w)}
			x += w
		}
	default:
		for i := range t.items {
			w := t.opts.ItemView.Width
			if t.opts.NeedsAdjustItemViewWidth {
				w = textutil.VisualWidth(t.items[i].title) + 2*t.opts.ItemView.Margin
			}
			w = max(w, 1)
			t.items[i].frame = Frame{X: float64(x), Width: float64(w)}
			x += w
		}
	}
	t.contentWidth = x + margin
}

func (t *TabView) indicatorFrame(i int) Frame {
	return t.items[i].frame.Inset(t.opts.AdditionView.Padding)
}

// focusOffset is the scroll offset that centres item i, clamped to the content.
func (t *TabView) focusOffset(i int) float64 {
	f := t.items[i].frame
	visible := float64(t.visibleWidth())
	maxOffset := math.Max(float64(t.contentWidth)-visible, 0)
	return clamp(f.X+f.Width/2-visible/2, 0, maxOffset)
}

func (t *TabView) setOffset(o float64) {
	if o == t.offset {
		return
	}
	t.offset = o
	if t.OnStripScroll != nil {
		t.OnStripScroll(o, t.contentWidth, t.visibleWidth())
	}
}

// cellStyle is the per-column style used while rasterising the strip.
type cellStyle struct {
	fg, bg    string
	bold      bool
	underline bool
}

type stripCell struct {
	text  string
	width int // 0 marks the trailing column of a wide glyph
	style cellStyle
}

// View renders the strip. Rows: text on row 0, underline and rule on the last
// row when the underline indicator is used and Height allows.
func (t *TabView) View() string {
	height := t.Height()
	visible := t.visibleWidth()
	rows := make([]string, height)
	if t.width == 0 {
		return strings.Join(rows, "\n")
	}
	blank := strings.Repeat(" ", visible)
	for i := range rows {
		rows[i] = blank
	}
	if len(t.items) > 0 && visible > 0 {
		text, under := t.rasterise(height)
		start := int(math.Round(t.offset))
		rows[0] = renderCells(window(text, start, visible))
		if under != nil {
			rows[height-1] = renderCells(window(under, start, visible))
		}
	}
	bg := lipgloss.NewStyle()
	if t.opts.Background != "" {
		bg = bg.Background(lipgloss.Color(t.opts.Background))
	}
	left := strings.Repeat(" ", t.insets.Left)
	right := strings.Repeat(" ", max(t.width-t.insets.Left-visible, 0))
	for i, r := range rows {
		rows[i] = bg.Render(left + r + right)
	}
	return strings.Join(rows, "\n")
}

func (t *TabView) rasterise(height int) (text, under []stripCell) {
	n := t.contentWidth
	text = make([]stripCell, n)
	for i := range text {
		text[i] = stripCell{text: " ", width: 1}
	}
	for _, it := range t.items {
		x, end := it.frame.Cells()
		label := textutil.PadCenter(it.title, end-x)
		style := cellStyle{
			fg:   blendColor(t.opts.ItemView.TextColor, t.opts.ItemView.SelectedTextColor, it.emphasis),
			bold: t.opts.ItemView.Bold && it.emphasis >= 0.5,
		}
		for _, c := range textutil.Cells(label) {
			if x+c.Width > end || x >= n {
				break
			}
			text[x] = stripCell{text: c.Text, width: c.Width, style: style}
			for k := 1; k < c.Width; k++ {
				text[x+k] = stripCell{width: 0, style: style}
			}
			x += c.Width
		}
	}

	is, ie := t.indicator.Cells()
	is, ie = max(is, 0), min(ie, n)
	switch t.opts.Addition {
	case AdditionCircle:
		for c := is; c < ie; c++ {
			text[c].style.bg = t.opts.AdditionView.Color
		}
	case AdditionUnderline:
		if height < 2 {
			for c := is; c < ie; c++ {
				text[c].style.underline = true
			}
			break
		}
		under = make([]stripCell, n)
		for c := range under {
			under[c] = stripCell{text: ruleChar, width: 1, style: cellStyle{fg: t.opts.RuleColor}}
		}
		for c := is; c < ie; c++ {
			under[c] = stripCell{text: t.opts.AdditionView.Underline.Char, width: 1, style: cellStyle{fg: t.opts.AdditionView.Color}}
		}
	}
	return text, under
}

// window cuts visible columns starting at start. Wide glyphs split by an edge
// become spaces, and edge markers replace the outermost columns when content
// is clipped on that side.
func window(cells []stripCell, start, visible int) []stripCell {
	out := make([]stripCell, visible)
	for i := range out {
		src := start + i
		if src < 0 || src >= len(cells) {
			out[i] = stripCell{text: " ", width: 1}
			continue
		}
		c := cells[src]
		if c.width == 0 && i == 0 {
			c = stripCell{text: " ", width: 1, style: c.style}
		}
		if c.width > 1 && i+c.width > visible {
			c = stripCell{text: " ", width: 1, style: c.style}
		}
		out[i] = c
	}
	if start > 0 && visible > 0 && out[0].width <= 1 {
		out[0] = stripCell{text: edgeMarkerLeft, width: 1, style: cellStyle{fg: "241"}}
	}
	if start+visible < len(cells) && visible > 1 && out[visible-1].width <= 1 {
		if out[visible-1].width == 0 && out[visible-2].width == 2 {
			out[visible-2] = stripCell{text: " ", width: 1, style: out[visible-2].style}
		}
		out[visible-1] = stripCell{text: edgeMarkerRight, width: 1, style: cellStyle{fg: "241"}}
	}
	return out
}

// renderCells groups runs of equal style and renders them with lipgloss.
func renderCells(cells []stripCell) string {
	var b, run strings.Builder
	var cur cellStyle
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(cur.render(run.String()))
		run.Reset()
	}
	for i, c := range cells {
		if c.width == 0 {
			continue
		}
		if i == 0 || c.style != cur {
			flush()
			cur = c.style
		}
		run.WriteString(c.text)
	}
	flush()
	return b.String()
}

func (s cellStyle) render(text string) string {
	st := lipgloss.NewStyle()
	if s.fg != "" {
		st = st.Foreground(lipgloss.Color(s.fg))
	}
	if s.bg != "" {
		st = st.Background(lipgloss.Color(s.bg))
	}
	if s.bold {
		st = st.Bold(true)
	}
	if s.underline {
		st = st.Underline(true)
	}
	return st.Render(text)
}

// blendColor mixes two hex colours in Lab space. Colours that are not hex
// (ANSI indices, names) cannot be blended and snap at the midpoint.
func blendColor(from, to string, t float64) string {
	t = clamp01(t)
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil {
		if t >= 0.5 {
			return to
		}
		return from
	}
	return a.BlendLab(b, t).Clamped().Hex()
}
