package swipemenu

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"swipemenu/internal/ui"
)

// PageSource is what the container needs from the orchestrator to fetch pages.
type PageSource interface {
	PageCount() int
	Page(index int) ui.View
}

// frameMsg advances a running container animation.
type frameMsg struct {
	container string
	gen       uint64
}

type animKind int

const (
	animSettle animKind = iota // gesture settle, reports OnScroll
	animPlace                  // animated SetCurrentPage, visual only
)

type animation struct {
	kind     animKind
	start    float64
	target   float64
	step     int
	steps    int
	commit   bool
	onPlaced func()
}

type drag struct {
	originX int
	locked  bool
	blocked bool
	dir     Direction
}

// PageContainer shows one page at a time and a neighbour while a transition
// is in flight. Its scroll surface spans three page widths: the visible page
// rests at offset == width, the previous page at 0 and the next at 2*width.
type PageContainer struct {
	id     string
	opts   ContentAreaOptions
	insets Insets
	source PageSource

	width, height int

	index        int
	page         ui.View
	pendingIndex int
	pending      ui.View
	pendingDir   Direction

	offset float64
	drag   *drag
	anim   *animation
	gen    uint64

	// OnWillTransition is called when a gesture acquires a neighbour page.
	OnWillTransition func(page ui.View)
	// OnScroll is called with the surface offset during gestures and settles.
	OnScroll func(offset, width float64)
	// OnDidFinishTransition is called when a gesture settles. completed is
	// false when the container reverted to the original page.
	OnDidFinishTransition func(completed bool, from, to int)
}

// NewPageContainer creates an empty container drawing pages from source.
func NewPageContainer(opts ContentAreaOptions, insets Insets, source PageSource) *PageContainer {
	return &PageContainer{
		id:           uuid.NewString(),
		opts:         opts,
		insets:       insets,
		source:       source,
		pendingIndex: -1,
	}
}

// Configure replaces the options; any running gesture or animation is cancelled.
func (p *PageContainer) Configure(opts ContentAreaOptions, insets Insets) {
	p.Cancel()
	p.opts = opts
	p.insets = insets
	p.offset = float64(p.pageWidth())
	p.resizePages()
}

// SetSize sets the container's outer size in cells.
func (p *PageContainer) SetSize(width, height int) tea.Cmd {
	p.width, p.height = max(width, 0), max(height, 0)
	if p.anim == nil && p.drag == nil {
		p.offset = float64(p.pageWidth())
	}
	return p.resizePages()
}

// Index returns the index of the page currently displayed.
func (p *PageContainer) Index() int { return p.index }

// Page returns the displayed page.
func (p *PageContainer) Page() ui.View { return p.page }

// Offset returns the scroll surface offset.
func (p *PageContainer) Offset() float64 { return p.offset }

// Dragging reports whether a drag gesture is in progress.
func (p *PageContainer) Dragging() bool { return p.drag != nil }

// Animating reports whether a settle or placement animation is running.
func (p *PageContainer) Animating() bool { return p.anim != nil }

// Clear drops the displayed page.
func (p *PageContainer) Clear() {
	p.Cancel()
	p.page = nil
	p.index = 0
}

// PageBefore returns the neighbour preceding index, or false at the first page.
func (p *PageContainer) PageBefore(index int) (ui.View, bool) {
	if p.source == nil || index <= 0 || index-1 >= p.source.PageCount() {
		return nil, false
	}
	return p.source.Page(index - 1), true
}

// PageAfter returns the neighbour following index, or false at the last page.
func (p *PageContainer) PageAfter(index int) (ui.View, bool) {
	if p.source == nil || index < 0 || index+1 >= p.source.PageCount() {
		return nil, false
	}
	return p.source.Page(index + 1), true
}

// SetCurrentPage replaces the visible page. dir only selects the slide
// direction of an animated placement. done runs once the page is in place;
// immediately (before return) unless animated with a non-zero duration.
func (p *PageContainer) SetCurrentPage(index int, dir Direction, animated bool, done func()) tea.Cmd {
	if p.source == nil || index < 0 || index >= p.source.PageCount() {
		if done != nil {
			done()
		}
		return nil
	}
	p.Cancel()
	if p.page != nil && index == p.index {
		if done != nil {
			done()
		}
		return nil
	}
	page := p.source.Page(index)
	w := float64(p.pageWidth())
	if !animated || p.opts.TransitionDuration <= 0 || w == 0 || p.page == nil {
		cmd := p.show(index, page)
		if done != nil {
			done()
		}
		return cmd
	}
	page, resize := p.resize(page)
	p.pendingIndex, p.pending, p.pendingDir = index, page, dir
	target := 2 * w
	if dir == Reverse {
		target = 0
	}
	return tea.Batch(resize, p.animate(animation{kind: animPlace, start: w, target: target, commit: true, onPlaced: done}))
}

// BeginDrag starts tracking a drag at column x.
func (p *PageContainer) BeginDrag(x int) {
	if !p.opts.IsScrollEnabled || p.anim != nil {
		return
	}
	p.drag = &drag{originX: x}
}

// DragTo moves an active drag to column x. A drag to the left pulls the next
// page in; to the right, the previous one.
func (p *PageContainer) DragTo(x int) {
	d := p.drag
	if d == nil {
		return
	}
	dx := float64(x - d.originX)
	w := float64(p.pageWidth())
	if w == 0 {
		return
	}
	if !d.locked && dx != 0 {
		d.locked = true
		d.dir = Forward
		if dx > 0 {
			d.dir = Reverse
		}
		if !p.acquire(d.dir) {
			d.blocked = true
		}
	}
	if !d.locked || d.blocked {
		return
	}
	var off float64
	if d.dir == Forward {
		off = clamp(w-dx, w, 2*w)
	} else {
		off = clamp(w-dx, 0, w)
	}
	p.scrollTo(off)
}

// EndDrag releases the drag and settles to the neighbour when progress
// reached SwipeCommitRatio, back to the original page otherwise.
func (p *PageContainer) EndDrag() tea.Cmd {
	d := p.drag
	p.drag = nil
	if d == nil || !d.locked || d.blocked || p.pending == nil {
		return nil
	}
	return p.settle(p.progress() >= p.opts.SwipeCommitRatio)
}

// Swipe runs a full gesture toward dir, committing unless there is no
// neighbour. Used for keys and wheel events.
func (p *PageContainer) Swipe(dir Direction) tea.Cmd {
	if !p.opts.IsScrollEnabled || p.drag != nil || p.anim != nil || p.pageWidth() == 0 {
		return nil
	}
	if !p.acquire(dir) {
		return nil
	}
	return p.settle(true)
}

// Cancel aborts any drag or animation without callbacks and returns to the
// displayed page.
func (p *PageContainer) Cancel() {
	p.gen++
	p.drag = nil
	p.anim = nil
	p.pending = nil
	p.pendingIndex = -1
	p.offset = float64(p.pageWidth())
}

// Update handles animation frames and forwards everything else to the page.
func (p *PageContainer) Update(msg tea.Msg) tea.Cmd {
	if f, ok := msg.(frameMsg); ok {
		if f.container != p.id || f.gen != p.gen || p.anim == nil {
			return nil
		}
		return p.advance()
	}
	if p.page == nil {
		return nil
	}
	var cmd tea.Cmd
	p.page, cmd = p.page.Update(msg)
	return cmd
}

// View renders the visible page, or the visible slices of both pages while
// a transition is in flight.
func (p *PageContainer) View() string {
	w, h := p.pageWidth(), p.height
	if p.width == 0 || h == 0 {
		return ""
	}
	box := lipgloss.NewStyle().Width(w).Height(h).MaxWidth(w).MaxHeight(h)
	if p.opts.Background != "" {
		box = box.Background(lipgloss.Color(p.opts.Background))
	}
	render := func(v ui.View) []string {
		if v == nil {
			return strings.Split(box.Render(""), "\n")
		}
		return strings.Split(box.Render(v.View()), "\n")
	}

	cur := render(p.page)
	lines := cur
	if p.pending != nil && w > 0 {
		shift := int(math.Round(p.offset)) - w // >0 next page entering from the right
		next := render(p.pending)
		lines = make([]string, h)
		for row := 0; row < h; row++ {
			lines[row] = splice(lineAt(cur, row), lineAt(next, row), shift, w)
		}
	}
	left := strings.Repeat(" ", p.inset().Left)
	right := strings.Repeat(" ", p.inset().Right)
	for i := range lines {
		lines[i] = left + lines[i] + right
	}
	return strings.Join(lines, "\n")
}

func lineAt(lines []string, row int) string {
	if row < len(lines) {
		return lines[row]
	}
	return ""
}

// splice shows cur shifted left by shift columns with next filling the gap
// (shift > 0), or shifted right with next entering from the left (shift < 0).
func splice(cur, next string, shift, w int) string {
	switch {
	case shift > 0:
		return cutCols(cur, shift, w) + cutCols(next, 0, shift)
	case shift < 0:
		s := -shift
		return cutCols(next, w-s, w) + cutCols(cur, 0, w-s)
	default:
		return cur
	}
}

// cutCols returns columns [from, to) of a rendered line, padded to width.
func cutCols(line string, from, to int) string {
	if to <= from {
		return ""
	}
	s := ansi.Cut(line, from, to)
	if pad := (to - from) - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func (p *PageContainer) inset() Insets {
	if !p.opts.IsSafeAreaEnabled {
		return Insets{}
	}
	return p.insets
}

func (p *PageContainer) pageWidth() int {
	in := p.inset()
	return max(p.width-in.Left-in.Right, 0)
}

func (p *PageContainer) progress() float64 {
	w := float64(p.pageWidth())
	if w == 0 {
		return 0
	}
	return clamp01(math.Abs(p.offset-w) / w)
}

// acquire fetches the neighbour in dir and announces it. False at a boundary.
func (p *PageContainer) acquire(dir Direction) bool {
	var (
		page ui.View
		ok   bool
	)
	if dir == Forward {
		page, ok = p.PageAfter(p.index)
	} else {
		page, ok = p.PageBefore(p.index)
	}
	if !ok {
		return false
	}
	p.pendingIndex = p.index + dir.step()
	p.pending, _ = p.resize(page)
	p.pendingDir = dir
	if p.OnWillTransition != nil {
		p.OnWillTransition(page)
	}
	// The callback may have cancelled.
	return p.pending != nil
}

func (p *PageContainer) settle(commit bool) tea.Cmd {
	w := float64(p.pageWidth())
	target := w
	if commit {
		target = 2 * w
		if p.pendingDir == Reverse {
			target = 0
		}
	}
	return p.animate(animation{kind: animSettle, start: p.offset, target: target, commit: commit})
}

// animate runs a to completion synchronously when there is no duration,
// otherwise schedules the first frame.
func (p *PageContainer) animate(a animation) tea.Cmd {
	steps := 0
	if p.opts.TransitionDuration > 0 && p.opts.FrameInterval > 0 {
		steps = int(math.Ceil(float64(p.opts.TransitionDuration) / float64(p.opts.FrameInterval)))
	}
	if steps <= 0 {
		a.steps, a.step = 1, 1
		p.anim = &a
		return p.finish()
	}
	a.steps = steps
	p.gen++
	p.anim = &a
	return p.tick()
}

func (p *PageContainer) tick() tea.Cmd {
	id, gen := p.id, p.gen
	return tea.Tick(p.opts.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{container: id, gen: gen}
	})
}

func (p *PageContainer) advance() tea.Cmd {
	a := p.anim
	a.step++
	if a.step >= a.steps {
		return p.finish()
	}
	off := lerp(a.start, a.target, easeOutCubic(float64(a.step)/float64(a.steps)))
	if a.kind == animSettle {
		p.scrollTo(off)
	} else {
		p.offset = off
	}
	return p.tick()
}

func (p *PageContainer) finish() tea.Cmd {
	a := p.anim
	if a.kind == animSettle {
		p.scrollTo(a.target)
	}
	p.anim = nil
	from, to := p.index, p.pendingIndex
	var cmd tea.Cmd
	if a.commit {
		cmd = p.show(to, p.pending)
	} else {
		p.pending, p.pendingIndex = nil, -1
		p.offset = float64(p.pageWidth())
	}
	switch a.kind {
	case animSettle:
		if p.OnDidFinishTransition != nil {
			p.OnDidFinishTransition(a.commit, from, to)
		}
	case animPlace:
		if a.onPlaced != nil {
			a.onPlaced()
		}
	}
	return cmd
}

func (p *PageContainer) show(index int, page ui.View) tea.Cmd {
	var cmd tea.Cmd
	p.index = index
	p.page, cmd = p.resize(page)
	p.pending, p.pendingIndex = nil, -1
	p.offset = float64(p.pageWidth())
	return cmd
}

func (p *PageContainer) scrollTo(off float64) {
	if off == p.offset {
		return
	}
	p.offset = off
	if p.OnScroll != nil {
		p.OnScroll(off, float64(p.pageWidth()))
	}
}

func (p *PageContainer) resize(v ui.View) (ui.View, tea.Cmd) {
	if v == nil || p.width == 0 {
		return v, nil
	}
	return ui.Resize(v, p.pageWidth(), p.height)
}

func (p *PageContainer) resizePages() tea.Cmd {
	var c1, c2 tea.Cmd
	p.page, c1 = p.resize(p.page)
	p.pending, c2 = p.resize(p.pending)
	return tea.Batch(c1, c2)
}
