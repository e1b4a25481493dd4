package swipemenu

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInit_SetsUpAtFirstPage(t *testing.T) {
	src := newFakeSource(3)
	rec := &recorder{}
	m := New(instantOptions(), src, rec)
	drain(t, m, m.Init())

	assert.Equal(t, []string{"willSetup 0", "didSetup 0"}, rec.events)
	assert.Equal(t, 0, m.CurrentIndex())
	assert.Equal(t, 3, m.TabView().Count())
	assert.Equal(t, StateIdle, m.State())

	rec.reset()
	assert.Nil(t, m.Init(), "second Init should be a no-op")
	assert.Empty(t, rec.events)
}

func TestResize_SendsNoIndexNotifications(t *testing.T) {
	m, src, rec := newTestMenu(t, 3, instantOptions())

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	drain(t, m, cmd)

	assert.Empty(t, rec.events)
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 98, src.pages[0].width, "safe area insets should be removed from page width")
	assert.Equal(t, 28, src.pages[0].height, "tab strip rows should be removed from page height")
}

func TestJump_NotifiesAroundDeferredPlacement(t *testing.T) {
	m, _, rec := newTestMenu(t, 5, instantOptions())

	cmd, err := m.Jump(3, false)
	require.NoError(t, err)
	require.NotNil(t, cmd)

	assert.Equal(t, []string{"will 0->3"}, rec.events, "will should fire before Jump returns")
	assert.Equal(t, 0, m.CurrentIndex(), "index must not commit before placement")
	to, ok := m.JumpingToIndex()
	assert.True(t, ok)
	assert.Equal(t, 3, to)
	assert.Equal(t, StateProgrammaticJump, m.State())

	drain(t, m, cmd)

	assert.Equal(t, []string{"will 0->3", "did 0->3"}, rec.events)
	assert.Equal(t, 3, m.CurrentIndex())
	assert.Equal(t, 3, m.TabView().Selected())
	assert.Equal(t, 3, m.PageContainer().Index())
	_, ok = m.JumpingToIndex()
	assert.False(t, ok)
	assert.Equal(t, StateIdle, m.State())
}

func TestJump_SameIndexIsSilent(t *testing.T) {
	m, _, rec := newTestMenu(t, 3, instantOptions())

	cmd, err := m.Jump(0, true)
	require.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Empty(t, rec.events)
	assert.Equal(t, StateIdle, m.State())
}

func TestJump_RejectsOutOfRange(t *testing.T) {
	m, _, rec := newTestMenu(t, 3, instantOptions())

	for _, idx := range []int{-1, 3, 42} {
		_, err := m.Jump(idx, false)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "jump to %d", idx)
	}
	assert.Empty(t, rec.events)
	assert.Equal(t, 0, m.CurrentIndex())
}

func TestJump_LatestQueuedRequestRunsWhenIdle(t *testing.T) {
	m, _, rec := newTestMenu(t, 6, instantOptions())

	cmd, err := m.Jump(2, false)
	require.NoError(t, err)

	queued, err := m.Jump(4, false)
	require.NoError(t, err)
	assert.Nil(t, queued)
	queued, err = m.Jump(5, false)
	require.NoError(t, err)
	assert.Nil(t, queued)

	drain(t, m, cmd)

	assert.Equal(t, []string{"will 0->2", "did 0->2", "will 2->5", "did 2->5"}, rec.events)
	assert.Equal(t, 5, m.CurrentIndex())
}

func TestJump_AnimatedPlacementFinishesOnFrames(t *testing.T) {
	opts := DefaultOptions()
	opts.ContentArea.TransitionDuration = 3 * time.Millisecond
	opts.ContentArea.FrameInterval = time.Millisecond
	m, _, rec := newTestMenu(t, 4, opts)

	cmd, err := m.Jump(2, true)
	require.NoError(t, err)

	_, tick := m.Update(cmd())
	require.NotNil(t, tick, "animated placement should schedule frames")
	assert.Equal(t, StateProgrammaticJump, m.State())
	assert.True(t, m.PageContainer().Animating())
	assert.Equal(t, []string{"will 0->2"}, rec.events)

	drain(t, m, tick)

	assert.Equal(t, []string{"will 0->2", "did 0->2"}, rec.events)
	assert.Equal(t, 2, m.PageContainer().Index())
	assert.Equal(t, StateIdle, m.State())
}

func TestTabTap_CommitsAndNotifiesOnce(t *testing.T) {
	m, _, rec := newTestMenu(t, 5, instantOptions())

	f, ok := m.TabView().ItemFrame(2)
	require.True(t, ok)
	x := 1 + int(f.X-m.TabView().Offset()) + 1

	_, cmd := m.Update(mouse(tea.MouseActionPress, x, 0))
	drain(t, m, cmd)
	assert.Empty(t, rec.events, "press alone should not select")

	_, cmd = m.Update(mouse(tea.MouseActionRelease, x, 0))
	drain(t, m, cmd)

	assert.Equal(t, []string{"will 0->2", "did 0->2"}, rec.events)
	assert.Equal(t, 2, m.CurrentIndex())
	assert.Equal(t, 2, m.PageContainer().Index())
	assert.Equal(t, StateIdle, m.State())
}

func TestTabTap_OnSelectedItemIsSilent(t *testing.T) {
	m, _, rec := newTestMenu(t, 3, instantOptions())

	m.TabView().Activate(0)
	assert.Empty(t, rec.events)
}

func TestKeys_MoveSelectionWhenTabsFocused(t *testing.T) {
	m, src, rec := newTestMenu(t, 5, instantOptions())
	require.Equal(t, PanelTabs, m.Focused())

	_, cmd := m.Update(keyMsg("l"))
	drain(t, m, cmd)
	assert.Equal(t, 1, m.CurrentIndex())

	_, cmd = m.Update(keyMsg("4"))
	drain(t, m, cmd)
	assert.Equal(t, 3, m.CurrentIndex())

	_, cmd = m.Update(keyMsg("h"))
	drain(t, m, cmd)
	assert.Equal(t, 2, m.CurrentIndex())

	assert.Equal(t, []string{"will 0->1", "did 0->1", "will 1->3", "did 1->3", "will 3->2", "did 3->2"}, rec.events)

	_, _ = m.Update(keyMsg("tab"))
	assert.Equal(t, PanelPages, m.Focused())
	before := src.pages[2].msgs
	_, cmd = m.Update(keyMsg("l"))
	drain(t, m, cmd)
	assert.Equal(t, 2, m.CurrentIndex(), "keys should reach the page when it has focus")
	assert.Equal(t, before+1, src.pages[2].msgs)
}

func TestSwipeKey_CompletesGesture(t *testing.T) {
	m, _, rec := newTestMenu(t, 3, instantOptions())

	_, cmd := m.Update(keyMsg("L"))
	drain(t, m, cmd)
	assert.Equal(t, []string{"will 0->1", "did 0->1"}, rec.events)
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, 1, m.TabView().Selected())

	rec.reset()
	_, cmd = m.Update(keyMsg("H"))
	drain(t, m, cmd)
	assert.Equal(t, []string{"will 1->0", "did 1->0"}, rec.events)
}

func TestSwipe_AtBoundaryDoesNothing(t *testing.T) {
	m, _, rec := newTestMenu(t, 3, instantOptions())

	_, cmd := m.Update(keyMsg("H"))
	drain(t, m, cmd)
	assert.Empty(t, rec.events)
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 0, m.CurrentIndex())
}

func TestDrag_PastRatioCommits(t *testing.T) {
	m, _, rec := newTestMenu(t, 3, instantOptions())
	rest0, _ := m.TabView().RestingIndicatorFrame(0)
	rest1, _ := m.TabView().RestingIndicatorFrame(1)

	_, cmd := m.Update(mouse(tea.MouseActionPress, 60, 5))
	drain(t, m, cmd)
	_, cmd = m.Update(mouse(tea.MouseActionMotion, 10, 5))
	drain(t, m, cmd)

	assert.Equal(t, StateGestureSwipe, m.State())
	to, ok := m.JumpingToIndex()
	assert.True(t, ok)
	assert.Equal(t, 1, to)
	assert.Empty(t, rec.events, "notifications wait for the settle")
	ind := m.TabView().IndicatorFrame()
	assert.Greater(t, ind.X, rest0.X, "indicator should follow the drag")
	assert.Less(t, ind.X, rest1.X)

	_, cmd = m.Update(mouse(tea.MouseActionRelease, 10, 5))
	drain(t, m, cmd)

	assert.Equal(t, []string{"will 0->1", "did 0->1"}, rec.events)
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, rest1, m.TabView().IndicatorFrame())
	assert.Equal(t, StateIdle, m.State())
}

func TestDrag_ShortOfRatioReverts(t *testing.T) {
	m, _, rec := newTestMenu(t, 3, instantOptions())
	rest0, _ := m.TabView().RestingIndicatorFrame(0)

	_, cmd := m.Update(mouse(tea.MouseActionPress, 60, 5))
	drain(t, m, cmd)
	_, cmd = m.Update(mouse(tea.MouseActionMotion, 50, 5))
	drain(t, m, cmd)
	require.Equal(t, StateGestureSwipe, m.State())
	_, cmd = m.Update(mouse(tea.MouseActionRelease, 50, 5))
	drain(t, m, cmd)

	assert.Empty(t, rec.events)
	assert.Equal(t, 0, m.CurrentIndex())
	assert.Equal(t, 0, m.PageContainer().Index())
	assert.Equal(t, rest0, m.TabView().IndicatorFrame())
	_, ok := m.JumpingToIndex()
	assert.False(t, ok)
	assert.Equal(t, StateIdle, m.State())
}

func TestDrag_TowardMissingNeighbourIsIgnored(t *testing.T) {
	m, _, rec := newTestMenu(t, 3, instantOptions())

	_, cmd := m.Update(mouse(tea.MouseActionPress, 10, 5))
	drain(t, m, cmd)
	_, cmd = m.Update(mouse(tea.MouseActionMotion, 60, 5))
	drain(t, m, cmd)
	assert.Equal(t, StateIdle, m.State())
	_, cmd = m.Update(mouse(tea.MouseActionRelease, 60, 5))
	drain(t, m, cmd)

	assert.Empty(t, rec.events)
	assert.Equal(t, 0, m.CurrentIndex())
}

func TestScrollDisabled_IgnoresGestures(t *testing.T) {
	opts := instantOptions()
	opts.ContentArea.IsScrollEnabled = false
	m, _, rec := newTestMenu(t, 3, opts)

	_, cmd := m.Update(keyMsg("L"))
	drain(t, m, cmd)
	_, cmd = m.Update(mouse(tea.MouseActionPress, 60, 5))
	drain(t, m, cmd)
	_, cmd = m.Update(mouse(tea.MouseActionMotion, 10, 5))
	drain(t, m, cmd)

	assert.Empty(t, rec.events)
	assert.Equal(t, StateIdle, m.State())
}

func TestReloadData_AbandonsInFlightJump(t *testing.T) {
	m, _, rec := newTestMenu(t, 5, instantOptions())

	cmd, err := m.Jump(3, false)
	require.NoError(t, err)
	drain(t, m, m.ReloadData())
	drain(t, m, cmd)

	assert.Equal(t, []string{"will 0->3", "willSetup 0", "didSetup 0"}, rec.events,
		"the reload cancels the change, so no did follows")
	assert.Equal(t, 0, m.CurrentIndex())
	assert.Equal(t, StateIdle, m.State())
}

func TestReloadData_KeepsAndClampsIndex(t *testing.T) {
	m, src, rec := newTestMenu(t, 5, instantOptions())
	cmd, err := m.Jump(4, false)
	require.NoError(t, err)
	drain(t, m, cmd)
	rec.reset()

	drain(t, m, m.ReloadData())
	assert.Equal(t, []string{"willSetup 4", "didSetup 4"}, rec.events)
	assert.Equal(t, 4, m.CurrentIndex())

	src.pages = src.pages[:2]
	rec.reset()
	drain(t, m, m.ReloadData())
	assert.Equal(t, []string{"willSetup 1", "didSetup 1"}, rec.events)
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, 2, m.TabView().Count())

	rec.reset()
	drain(t, m, m.ReloadData(WithDefaultIndex(-3)))
	assert.Equal(t, []string{"willSetup 0", "didSetup 0"}, rec.events)
}

func TestReloadData_AppliesNewOptions(t *testing.T) {
	m, _, _ := newTestMenu(t, 3, instantOptions())

	opts := instantOptions()
	opts.TabView.Style = StyleSegmented
	opts.TabView.Height = 1
	drain(t, m, m.ReloadData(WithOptions(opts), WithDefaultIndex(2)))

	assert.Equal(t, StyleSegmented, m.Options().TabView.Style)
	assert.Equal(t, 1, m.TabView().Height())
	assert.Equal(t, 2, m.TabView().Selected())
	f, _ := m.TabView().ItemFrame(2)
	assert.Equal(t, 78.0, f.MaxX(), "segmented items should fill the strip")
}

func TestWillChangeOrientation_RelayoutIsSilent(t *testing.T) {
	m, _, rec := newTestMenu(t, 8, instantOptions())
	cmd, err := m.Jump(6, false)
	require.NoError(t, err)
	drain(t, m, cmd)
	rec.reset()

	require.NotNil(t, m.WillChangeOrientation())
	assert.Equal(t, StateOrientationRelayout, m.State())

	_, cmd = m.Update(tea.WindowSizeMsg{Width: 30, Height: 40})
	drain(t, m, cmd)

	assert.Empty(t, rec.events)
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 6, m.CurrentIndex())
	assert.Equal(t, 6, m.TabView().Selected())
	rest, _ := m.TabView().RestingIndicatorFrame(6)
	assert.Equal(t, rest, m.TabView().IndicatorFrame())
}

func TestWillChangeOrientation_BeforeSetup(t *testing.T) {
	rec := &recorder{}
	m := New(instantOptions(), newFakeSource(4), rec)

	require.NotNil(t, m.WillChangeOrientation())
	assert.Equal(t, StateIdle, m.State(), "nothing is laid out yet")
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	drain(t, m, cmd)
	drain(t, m, m.Init())
	require.Equal(t, StateIdle, m.State())
	rec.reset()

	_, cmd = m.Update(keyMsg("3"))
	drain(t, m, cmd)
	assert.Equal(t, 2, m.CurrentIndex())

	cmd, err := m.Jump(1, false)
	require.NoError(t, err)
	drain(t, m, cmd)
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, []string{"will 0->2", "did 0->2", "will 2->1", "did 2->1"}, rec.events)
	assert.Equal(t, StateIdle, m.State())
}

func TestZeroPages(t *testing.T) {
	m, _, rec := newTestMenu(t, 0, instantOptions())

	assert.Equal(t, 0, m.PageCount())
	assert.Equal(t, 0, m.TabView().Count())
	cmd, err := m.Jump(0, false)
	assert.NoError(t, err)
	assert.Nil(t, cmd)
	_, cmd = m.Update(keyMsg("L"))
	drain(t, m, cmd)
	assert.Empty(t, rec.events)
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestNilDataSourceAndDelegate(t *testing.T) {
	m := New(instantOptions(), nil, nil)
	drain(t, m, m.Init())
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	drain(t, m, cmd)

	assert.Equal(t, 0, m.PageCount())
	cmd, err := m.Jump(1, false)
	assert.NoError(t, err)
	assert.Nil(t, cmd)
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestPageAt_PanicsOutOfRange(t *testing.T) {
	m, _, _ := newTestMenu(t, 2, instantOptions())

	assert.PanicsWithValue(t, "swipemenu: page index 2 out of range [0,2)", func() { m.pageAt(2) })
	assert.Panics(t, func() { m.pageAt(-1) })
}

func TestClose_DropsDeferredWork(t *testing.T) {
	m, _, rec := newTestMenu(t, 3, instantOptions())

	cmd, err := m.Jump(2, false)
	require.NoError(t, err)
	m.Close()
	drain(t, m, cmd)

	assert.Equal(t, []string{"will 0->2"}, rec.events)
	assert.True(t, m.Closed())
	_, err = m.Jump(1, false)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Nil(t, m.ReloadData())
}

func TestView_StacksStripOverPages(t *testing.T) {
	m, _, _ := newTestMenu(t, 3, instantOptions())

	out := m.View()
	assert.Equal(t, 20, lipgloss.Height(out))
	assert.Equal(t, 80, lipgloss.Width(out))
	assert.Contains(t, out, "Tab 1")
	assert.Contains(t, out, "page-0")
}

func TestTransitions_AreTraced(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	m, _, _ := newTestMenu(t, 3, instantOptions(), WithTracer(tp.Tracer("test")))
	before := len(sr.Ended())

	cmd, err := m.Jump(2, false)
	require.NoError(t, err)
	drain(t, m, cmd)

	spans := sr.Ended()[before:]
	require.Len(t, spans, 1)
	assert.Equal(t, "swipemenu.transition", spans[0].Name())
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "programmatic_jump", attrs["swipemenu.kind"].AsString())
	assert.Equal(t, int64(2), attrs["swipemenu.to"].AsInt64())
	assert.True(t, attrs["swipemenu.committed"].AsBool())
}
