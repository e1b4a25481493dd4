package swipemenu

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"swipemenu/internal/ui"
)

type fakePage struct {
	id            int
	width, height int
	msgs          int
}

func (p *fakePage) Init() tea.Cmd { return nil }

func (p *fakePage) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	p.msgs++
	return p, nil
}

func (p *fakePage) View() string {
	lines := make([]string, max(p.height, 1))
	for i := range lines {
		lines[i] = fmt.Sprintf("page-%d", p.id)
	}
	return strings.Join(lines, "\n")
}

func (p *fakePage) SetSize(w, h int) { p.width, p.height = w, h }

type fakeSource struct {
	pages []*fakePage
}

func newFakeSource(n int) *fakeSource {
	s := &fakeSource{}
	for i := 0; i < n; i++ {
		s.pages = append(s.pages, &fakePage{id: i})
	}
	return s
}

func (s *fakeSource) NumberOfPages() int        { return len(s.pages) }
func (s *fakeSource) TitleForPage(i int) string { return fmt.Sprintf("Tab %d", i) }
func (s *fakeSource) PageAt(i int) ui.View      { return s.pages[i] }
func (s *fakeSource) PageCount() int            { return len(s.pages) }
func (s *fakeSource) Page(i int) ui.View        { return s.pages[i] }
func (s *fakeSource) IndexOf(v ui.View) (int, bool) {
	for i, p := range s.pages {
		if ui.View(p) == v {
			return i, true
		}
	}
	return 0, false
}

// recorder is a Delegate that logs every notification in order.
type recorder struct {
	events []string
}

func (r *recorder) WillSetup(i int) { r.events = append(r.events, fmt.Sprintf("willSetup %d", i)) }
func (r *recorder) DidSetup(i int)  { r.events = append(r.events, fmt.Sprintf("didSetup %d", i)) }
func (r *recorder) WillChangeIndex(from, to int) {
	r.events = append(r.events, fmt.Sprintf("will %d->%d", from, to))
}
func (r *recorder) DidChangeIndex(from, to int) {
	r.events = append(r.events, fmt.Sprintf("did %d->%d", from, to))
}

func (r *recorder) reset() { r.events = nil }

// instantOptions settle and place without animation frames.
func instantOptions() Options {
	o := DefaultOptions()
	o.ContentArea.TransitionDuration = 0
	return o
}

// newTestMenu builds a set-up 80x20 menu over n fake pages with the
// setup notifications already cleared.
func newTestMenu(t *testing.T, n int, opts Options, vo ...ViewOption) (*SwipeMenuView, *fakeSource, *recorder) {
	t.Helper()
	src := newFakeSource(n)
	rec := &recorder{}
	m := New(opts, src, rec, vo...)
	drain(t, m, m.Init())
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	drain(t, m, cmd)
	rec.reset()
	return m, src, rec
}

// drain runs cmd and feeds every resulting message back through Update
// until no commands remain.
func drain(t *testing.T, m *SwipeMenuView, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 1000, "drain did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}
