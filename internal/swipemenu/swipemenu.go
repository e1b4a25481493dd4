package swipemenu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"swipemenu/internal/ui"
)

// Panel IDs used for focus and mouse routing.
const (
	PanelTabs  = "tabs"
	PanelPages = "pages"
)

var (
	ErrIndexOutOfRange = errors.New("page index out of range")
	ErrClosed          = errors.New("swipe menu closed")
)

// SwipeMenuView is the root widget: a TabView over a PageContainer.
// It is the only writer of the committed and provisional indices.
type SwipeMenuView struct {
	id         string
	opts       Options
	dataSource DataSource
	delegate   Delegate

	tab    *TabView
	pages  *PageContainer
	layout menuLayout
	focus  *ui.FocusManager
	keys   KeyMap

	current   int
	jumpingTo int
	jumping   bool
	tr        transition
	queued    *jumpRequest

	width, height int
	press         *mousePress
	cmds          []tea.Cmd

	logger *slog.Logger
	tracer trace.Tracer

	gen    uint64
	setUp  bool
	closed bool
}

var _ ui.View = (*SwipeMenuView)(nil)

// ViewOption customises a SwipeMenuView at construction.
type ViewOption func(*SwipeMenuView)

// WithLogger sets the structured logger. The default discards.
func WithLogger(l *slog.Logger) ViewOption {
	return func(m *SwipeMenuView) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTracer sets the tracer used for transition spans. The default is a no-op.
func WithTracer(t trace.Tracer) ViewOption {
	return func(m *SwipeMenuView) {
		if t != nil {
			m.tracer = t
		}
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) ViewOption {
	return func(m *SwipeMenuView) { m.keys = k }
}

// New creates a widget. Nothing is built until Init or ReloadData. ds and d may be nil.
func New(opts Options, ds DataSource, d Delegate, vo ...ViewOption) *SwipeMenuView {
	m := &SwipeMenuView{
		id:         uuid.NewString(),
		opts:       opts.normalized(),
		dataSource: ds,
		delegate:   d,
		keys:       DefaultKeyMap(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:     noop.NewTracerProvider().Tracer("swipemenu"),
	}
	for _, o := range vo {
		o(m)
	}
	m.logger = m.logger.With("menu", m.id)
	m.layout = menuLayout{m: m}
	m.focus = ui.NewFocusManager(m.layout)
	m.pages = NewPageContainer(m.opts.ContentArea, m.opts.insets(m.opts.ContentArea.IsSafeAreaEnabled), pageSource{m})
	m.pages.OnWillTransition = m.onWillTransition
	m.pages.OnScroll = m.onScroll
	m.pages.OnDidFinishTransition = m.onDidFinishTransition
	m.tab = m.newTabView()
	return m
}

// SetDataSource replaces the data source. nil means zero pages. Takes effect
// on the next ReloadData.
func (m *SwipeMenuView) SetDataSource(ds DataSource) { m.dataSource = ds }

// SetDelegate replaces the delegate. nil disables notifications.
func (m *SwipeMenuView) SetDelegate(d Delegate) { m.delegate = d }

// ID returns the instance id carried by the widget's deferred messages.
func (m *SwipeMenuView) ID() string { return m.id }

// CurrentIndex returns the committed page index.
func (m *SwipeMenuView) CurrentIndex() int { return m.current }

// JumpingToIndex returns the provisional target of an in-flight transition.
func (m *SwipeMenuView) JumpingToIndex() (int, bool) { return m.jumpingTo, m.jumping }

// State returns the current transition state.
func (m *SwipeMenuView) State() State { return m.tr.state }

// Options returns a copy of the active configuration.
func (m *SwipeMenuView) Options() Options { return m.opts }

// TabView returns the tab strip. It is replaced on every ReloadData.
func (m *SwipeMenuView) TabView() *TabView { return m.tab }

// PageContainer returns the page container.
func (m *SwipeMenuView) PageContainer() *PageContainer { return m.pages }

// Focused returns the panel ID that receives keys.
func (m *SwipeMenuView) Focused() string { return m.focus.Current }

// KeyMap returns the active key bindings.
func (m *SwipeMenuView) KeyMap() KeyMap { return m.keys }

// Closed reports whether Close has been called.
func (m *SwipeMenuView) Closed() bool { return m.closed }

// PageCount asks the data source for the page count on every call.
func (m *SwipeMenuView) PageCount() int {
	if m.dataSource == nil {
		return 0
	}
	return max(m.dataSource.NumberOfPages(), 0)
}

// Init builds the widget at index 0 unless it has already been set up.
func (m *SwipeMenuView) Init() tea.Cmd {
	if m.setUp || m.closed {
		return nil
	}
	return m.setup(0)
}

type reloadConfig struct {
	options      *Options
	defaultIndex *int
}

// ReloadOption customises ReloadData.
type ReloadOption func(*reloadConfig)

// WithOptions replaces the configuration as part of the reload.
func WithOptions(o Options) ReloadOption {
	return func(rc *reloadConfig) { rc.options = &o }
}

// WithDefaultIndex selects the page shown after the reload.
func WithDefaultIndex(i int) ReloadOption {
	return func(rc *reloadConfig) { rc.defaultIndex = &i }
}

// ReloadData rebuilds the tab strip and pages from the data source. Any
// in-flight transition is abandoned without notifications. The widget lands on
// the default index, or the previous index when none is given, clamped to the
// new page count. Only WillSetup/DidSetup fire.
func (m *SwipeMenuView) ReloadData(ro ...ReloadOption) tea.Cmd {
	if m.closed {
		return nil
	}
	var rc reloadConfig
	for _, o := range ro {
		o(&rc)
	}
	if rc.options != nil {
		m.opts = rc.options.normalized()
	}
	m.abort("reload")

	idx := m.current
	if rc.defaultIndex != nil {
		idx = *rc.defaultIndex
	}
	m.reset()
	cmd := m.setup(m.clampIndex(idx))
	return tea.Batch(cmd, m.flush())
}

// Jump navigates to index. The WillChangeIndex notification is sent before
// returning; placement happens when the returned command's message comes back
// through Update, followed by DidChangeIndex. Jumping to the current index is
// a silent no-op. Requests made while another transition is in flight are
// queued, the latest replacing any earlier one.
func (m *SwipeMenuView) Jump(index int, animated bool) (tea.Cmd, error) {
	if m.closed {
		return nil, ErrClosed
	}
	count := m.PageCount()
	if count == 0 || m.tab.Count() == 0 {
		return nil, nil
	}
	if index < 0 || index >= count {
		return nil, fmt.Errorf("jump to %d of %d pages: %w", index, count, ErrIndexOutOfRange)
	}
	if m.tr.state != StateIdle {
		m.queued = &jumpRequest{index: index, animated: animated}
		m.logger.Debug("jump queued", "to", index, "state", m.tr.state.String())
		return nil, nil
	}
	if index == m.current {
		m.tab.Select(index)
		return nil, nil
	}

	from := m.current
	m.begin(StateProgrammaticJump, from, index)
	m.tr.animated = animated
	m.notifyWill(from, index)
	m.setJumping(index)

	id, gen := m.id, m.gen
	return func() tea.Msg { return jumpMsg{menu: id, gen: gen} }, nil
}

// WillChangeOrientation announces a geometry change. The following layout
// pass sends no index notifications. Returns a command that requests the
// terminal size, which triggers that pass.
func (m *SwipeMenuView) WillChangeOrientation() tea.Cmd {
	if m.closed {
		return nil
	}
	// Before the first setup there is no layout to redo.
	if m.setUp && m.tr.state == StateIdle {
		m.begin(StateOrientationRelayout, m.current, m.current)
	}
	return tea.WindowSize()
}

// Close tears the widget down. Deferred messages still in flight become no-ops.
func (m *SwipeMenuView) Close() {
	if m.closed {
		return
	}
	m.abort("close")
	m.gen++
	m.closed = true
	m.pages.Cancel()
	m.cmds = nil
}

// Update implements ui.View.
func (m *SwipeMenuView) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case jumpMsg:
		cmd = m.place(msg)
	case frameMsg:
		cmd = m.pages.Update(msg)
	case tea.WindowSizeMsg:
		cmd = m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	default:
		cmd = m.pages.Update(msg)
	}
	return m, tea.Batch(cmd, m.flush())
}

// View implements ui.View.
func (m *SwipeMenuView) View() string {
	if m.width == 0 {
		return ""
	}
	tabs := m.tab.View()
	pages := m.pages.View()
	if pages == "" {
		return tabs
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabs, pages)
}

// setup builds the strip and shows idx, bracketed by the setup notifications.
func (m *SwipeMenuView) setup(idx int) tea.Cmd {
	m.delegateOrNop().WillSetup(idx)

	m.tab = m.newTabView()
	count := m.PageCount()
	m.tab.Setup(count, m.title)
	m.pages.Configure(m.opts.ContentArea, m.opts.insets(m.opts.ContentArea.IsSafeAreaEnabled))
	m.pages.SetSize(m.width, m.pageHeight())

	var cmd tea.Cmd
	if count == 0 {
		m.pages.Clear()
		idx = 0
	} else {
		m.tab.Select(idx)
		cmd = m.pages.SetCurrentPage(idx, Forward, false, nil)
	}
	m.current = idx
	m.setUp = true
	m.logger.Debug("setup", "index", idx, "pages", count)

	m.delegateOrNop().DidSetup(idx)
	return cmd
}

func (m *SwipeMenuView) reset() {
	m.current = 0
	m.clearJumping()
	m.tab.Reset()
	m.pages.Clear()
}

func (m *SwipeMenuView) newTabView() *TabView {
	t := NewTabView(m.opts.TabView, m.opts.insets(m.opts.TabView.IsSafeAreaEnabled))
	t.OnSelect = m.onTabSelect
	t.SetWidth(m.width)
	return t
}

// place is the deferred half of a programmatic jump.
func (m *SwipeMenuView) place(msg jumpMsg) tea.Cmd {
	if msg.menu != m.id || msg.gen != m.gen || m.tr.state != StateProgrammaticJump {
		return nil
	}
	if m.tr.to >= m.PageCount() {
		m.logger.Warn("jump target vanished before placement", "to", m.tr.to, "pages", m.PageCount())
		m.abort("target vanished")
		return nil
	}
	return m.update(m.tr.from, m.tr.to, m.tr.animated)
}

// update commits to and shows the page, notifying at most once per side.
// Shared by tab taps, completed gestures and programmatic jumps.
func (m *SwipeMenuView) update(from, to int, animated bool) tea.Cmd {
	m.notifyWill(from, to)
	m.tab.Select(to)
	m.current = to
	gen := m.gen
	return m.pages.SetCurrentPage(to, directionFor(from, to), animated, func() {
		if gen != m.gen || m.closed {
			return
		}
		m.clearJumping()
		m.end(true)
		m.notifyDid(from, to)
	})
}

func (m *SwipeMenuView) onTabSelect(index int) {
	if index == m.current {
		return
	}
	if m.tr.state != StateIdle {
		m.logger.Debug("tab tap rejected", "to", index, "state", m.tr.state.String())
		return
	}
	from := m.current
	m.begin(StateTabTap, from, index)
	m.setJumping(index)
	m.cmds = append(m.cmds, m.update(from, index, false))
}

func (m *SwipeMenuView) onWillTransition(page ui.View) {
	if m.tr.state != StateIdle || m.dataSource == nil {
		m.logger.Debug("gesture rejected", "state", m.tr.state.String())
		m.pages.Cancel()
		return
	}
	idx, ok := m.dataSource.IndexOf(page)
	if !ok {
		panic("swipemenu: data source cannot resolve the index of the pending page")
	}
	m.begin(StateGestureSwipe, m.current, idx)
	m.setJumping(idx)
}

func (m *SwipeMenuView) onScroll(offset, width float64) {
	if m.tr.state != StateGestureSwipe || !m.jumping || width == 0 {
		return
	}
	ratio := math.Abs(offset-width) / width
	m.tab.MoveIndicator(m.current, ratio, directionFor(m.current, m.jumpingTo))
}

func (m *SwipeMenuView) onDidFinishTransition(completed bool, _, _ int) {
	if m.tr.state != StateGestureSwipe || !m.jumping {
		return
	}
	if !completed {
		m.tab.Select(m.current)
		m.clearJumping()
		m.end(false)
		return
	}
	m.cmds = append(m.cmds, m.update(m.current, m.jumpingTo, false))
}

// resize is the layout pass. From idle (or after WillChangeOrientation) it
// runs as an orientation relayout; mid-transition it only resizes.
func (m *SwipeMenuView) resize(width, height int) tea.Cmd {
	m.width, m.height = max(width, 0), max(height, 0)
	relayout := m.setUp && (m.tr.state == StateIdle || m.tr.state == StateOrientationRelayout)
	if relayout && m.tr.state == StateIdle {
		m.begin(StateOrientationRelayout, m.current, m.current)
	}
	m.tab.SetWidth(m.width)
	cmd := m.pages.SetSize(m.width, m.pageHeight())
	if relayout {
		m.tab.Select(m.current)
		m.end(true)
	}
	return cmd
}

func (m *SwipeMenuView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Focus):
		m.focus.Next()
		return nil
	case key.Matches(msg, m.keys.SwipeForward):
		return m.swipe(Forward)
	case key.Matches(msg, m.keys.SwipeBack):
		return m.swipe(Reverse)
	}
	if !m.focus.Is(PanelTabs) {
		return m.pages.Update(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Next):
		m.tab.Activate(m.current + 1)
	case key.Matches(msg, m.keys.Prev):
		m.tab.Activate(m.current - 1)
	case key.Matches(msg, m.keys.Select):
		if len(msg.Runes) == 1 {
			m.tab.Activate(int(msg.Runes[0] - '1'))
		}
	}
	return nil
}

func (m *SwipeMenuView) swipe(dir Direction) tea.Cmd {
	if m.tr.state != StateIdle {
		return nil
	}
	return m.pages.Swipe(dir)
}

type mousePress struct {
	panel ui.Panel
	item  int
}

func (m *SwipeMenuView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelLeft:
		return m.swipe(Reverse)
	case tea.MouseButtonWheelRight:
		return m.swipe(Forward)
	}
	panel, inside := ui.PanelAt(m.layout, m.width, m.height, msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return nil
		}
		lx, _ := panel.Local(m.width, m.height, msg.X, msg.Y)
		m.press = &mousePress{panel: panel, item: -1}
		m.focus.SetFocus(panel.ID)
		switch panel.ID {
		case PanelTabs:
			m.press.item = m.tab.ItemAt(lx)
		case PanelPages:
			if m.tr.state == StateIdle {
				m.pages.BeginDrag(lx)
			}
		}
	case tea.MouseActionMotion:
		if m.press != nil && m.press.panel.ID == PanelPages {
			lx, _ := m.press.panel.Local(m.width, m.height, msg.X, msg.Y)
			m.pages.DragTo(lx)
		}
	case tea.MouseActionRelease:
		p := m.press
		m.press = nil
		if p == nil {
			return nil
		}
		switch p.panel.ID {
		case PanelTabs:
			if inside && panel.ID == PanelTabs {
				lx, _ := panel.Local(m.width, m.height, msg.X, msg.Y)
				if idx := m.tab.ItemAt(lx); idx >= 0 && idx == p.item {
					m.tab.Tap(lx)
				}
			}
		case PanelPages:
			return m.pages.EndDrag()
		}
	}
	return nil
}

// flush collects callback commands and starts a queued jump once idle.
func (m *SwipeMenuView) flush() tea.Cmd {
	cmds := m.cmds
	m.cmds = nil
	if m.tr.state == StateIdle && m.queued != nil {
		q := *m.queued
		m.queued = nil
		cmd, err := m.Jump(q.index, q.animated)
		if err != nil {
			m.logger.Warn("queued jump dropped", "to", q.index, "err", err)
		}
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *SwipeMenuView) begin(s State, from, to int) {
	id := uuid.NewString()
	_, span := m.tracer.Start(context.Background(), "swipemenu.transition", trace.WithAttributes(
		attribute.String("swipemenu.kind", s.String()),
		attribute.Int("swipemenu.from", from),
		attribute.Int("swipemenu.to", to),
		attribute.String("swipemenu.transition_id", id),
	))
	m.tr = transition{state: s, from: from, to: to, id: id, span: span}
	m.logger.Debug("transition begin", "transition_id", id, "state", s.String(), "from", from, "to", to)
}

func (m *SwipeMenuView) end(committed bool) {
	if m.tr.state == StateIdle {
		return
	}
	m.tr.span.SetAttributes(attribute.Bool("swipemenu.committed", committed))
	m.tr.span.End()
	m.logger.Debug("transition end", "transition_id", m.tr.id, "state", m.tr.state.String(), "committed", committed)
	m.tr = transition{}
}

// abort drops any in-flight transition and queued jump without notifications.
func (m *SwipeMenuView) abort(reason string) {
	m.queued = nil
	if m.tr.state == StateIdle {
		return
	}
	m.logger.Debug("transition aborted", "transition_id", m.tr.id, "reason", reason)
	m.gen++
	m.pages.Cancel()
	m.clearJumping()
	m.end(false)
}

func (m *SwipeMenuView) notifyWill(from, to int) {
	if m.tr.notified || m.tr.state == StateOrientationRelayout {
		return
	}
	m.tr.notified = true
	m.delegateOrNop().WillChangeIndex(from, to)
}

func (m *SwipeMenuView) notifyDid(from, to int) {
	m.delegateOrNop().DidChangeIndex(from, to)
}

func (m *SwipeMenuView) delegateOrNop() Delegate {
	if m.delegate == nil {
		return NopDelegate{}
	}
	return m.delegate
}

func (m *SwipeMenuView) setJumping(i int) {
	m.jumpingTo, m.jumping = i, true
}

func (m *SwipeMenuView) clearJumping() {
	m.jumpingTo, m.jumping = 0, false
}

func (m *SwipeMenuView) clampIndex(i int) int {
	count := m.PageCount()
	switch {
	case count == 0:
		return 0
	case i < 0:
		m.logger.Warn("default index clamped", "index", i, "pages", count)
		return 0
	case i >= count:
		m.logger.Warn("default index clamped", "index", i, "pages", count)
		return count - 1
	}
	return i
}

func (m *SwipeMenuView) title(i int) string {
	if m.dataSource == nil {
		return ""
	}
	return m.dataSource.TitleForPage(i)
}

func (m *SwipeMenuView) tabHeight() int {
	return min(m.tab.Height(), m.height)
}

func (m *SwipeMenuView) pageHeight() int {
	return max(m.height-m.tabHeight(), 0)
}

// pageAt fails fast on indices outside the data source's range.
func (m *SwipeMenuView) pageAt(i int) ui.View {
	n := m.PageCount()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("swipemenu: page index %d out of range [0,%d)", i, n))
	}
	return m.dataSource.PageAt(i)
}

// pageSource adapts the orchestrator for the PageContainer.
type pageSource struct{ m *SwipeMenuView }

func (s pageSource) PageCount() int         { return s.m.PageCount() }
func (s pageSource) Page(index int) ui.View { return s.m.pageAt(index) }

// menuLayout places the strip above the pages.
type menuLayout struct{ m *SwipeMenuView }

func (l menuLayout) Panels() []ui.Panel {
	return []ui.Panel{
		{ID: PanelTabs, Bounds: func(w, h int) (int, int, int, int) {
			return 0, 0, w, l.m.tabHeight()
		}},
		{ID: PanelPages, Bounds: func(w, h int) (int, int, int, int) {
			th := l.m.tabHeight()
			return 0, th, w, max(h-th, 0)
		}},
	}
}

func (l menuLayout) FocusOrder() []string { return []string{PanelTabs, PanelPages} }
