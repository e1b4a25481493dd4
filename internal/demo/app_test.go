package demo

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"swipemenu/internal/config"
	"swipemenu/internal/swipemenu"
)

func newTestApp(t *testing.T, mutate func(*config.Config)) (*App, tea.Model) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Menu.ContentArea.TransitionDuration = 0
	if mutate != nil {
		mutate(cfg)
	}
	app := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"))
	m := app.AsTeaModel()
	run(t, m, m.Init())
	send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return app, m
}

// send delivers msg and runs whatever it returns.
func send(t *testing.T, m tea.Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	run(t, m, cmd)
}

// run executes cmd and feeds resulting messages back until none remain.
// tea.Quit is not followed.
func run(t *testing.T, m tea.Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 1000, "commands did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(t *testing.T, m tea.Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		send(t, m, keyMsg(k))
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestApp_StartsAtConfiguredIndex(t *testing.T) {
	app, _ := newTestApp(t, func(c *config.Config) { c.Demo.InitialIndex = 3 })

	assert.Equal(t, 3, app.Menu.CurrentIndex())
	assert.Equal(t, 10, app.Menu.PageCount())
	assert.Equal(t, "Jynx", app.Catalog.TitleForPage(3))
}

func TestApp_ViewFitsTerminal(t *testing.T) {
	_, m := newTestApp(t, nil)

	out := m.View()
	assert.Equal(t, 30, lipgloss.Height(out))
	assert.Contains(t, out, "Bulbasaur")
	assert.Contains(t, out, "1/10")

	press(t, m, " ")
	out = m.View()
	assert.Equal(t, 30, lipgloss.Height(out), "leader help replaces the footer without growing the view")
	assert.Contains(t, out, "settings")
}

func TestApp_WideFooterShowsMenuKeys(t *testing.T) {
	_, m := newTestApp(t, nil)
	assert.NotContains(t, m.View(), "swipe forward")

	send(t, m, tea.WindowSizeMsg{Width: 180, Height: 30})
	assert.Contains(t, m.View(), "swipe forward")
}

func TestApp_LeaderJumpNext(t *testing.T) {
	app, m := newTestApp(t, nil)

	press(t, m, " ", "n")
	assert.Equal(t, 1, app.Menu.CurrentIndex())
	assert.Equal(t, "Bulbasaur → Caterpie", app.Delegate.Last)
	assert.Equal(t, 1, app.Delegate.Changes)
}

func TestApp_TabKeysReachMenu(t *testing.T) {
	app, m := newTestApp(t, nil)

	press(t, m, "l", "l", "L")
	assert.Equal(t, 3, app.Menu.CurrentIndex())
	press(t, m, "h")
	assert.Equal(t, 2, app.Menu.CurrentIndex())
}

func TestApp_AddAndRemovePages(t *testing.T) {
	app, m := newTestApp(t, nil)

	press(t, m, " ", "p", "+")
	assert.Equal(t, 11, app.Menu.PageCount())
	assert.Equal(t, 11, app.Menu.TabView().Count())
	assert.Equal(t, "Bulbasaur 2", app.Catalog.TitleForPage(10))

	press(t, m, " ", "p", "-", " ", "p", "-")
	assert.Equal(t, 9, app.Menu.PageCount())
}

func TestApp_RemovingCurrentPageClampsIndex(t *testing.T) {
	app, m := newTestApp(t, func(c *config.Config) { c.Demo.InitialIndex = 9 })

	press(t, m, " ", "p", "-")
	assert.Equal(t, 8, app.Menu.CurrentIndex())
}

func TestApp_CycleStyleAndIndicator(t *testing.T) {
	app, m := newTestApp(t, nil)

	press(t, m, " ", "t", "s")
	assert.Equal(t, swipemenu.StyleSegmented, app.Menu.Options().TabView.Style)
	press(t, m, " ", "t", "a")
	assert.Equal(t, swipemenu.AdditionCircle, app.Menu.Options().TabView.Addition)
}

func TestApp_SettingsOverlay(t *testing.T) {
	app, m := newTestApp(t, nil)

	press(t, m, " ", ",")
	require.Equal(t, 1, app.Overlays.Len())
	assert.Contains(t, m.View(), "Settings")

	// Style row is first; then jump to Pages (last row) and drop two.
	press(t, m, "l", "k", "h", "h", "a")
	assert.Equal(t, 0, app.Overlays.Len())
	assert.Equal(t, swipemenu.StyleSegmented, app.Menu.Options().TabView.Style)
	assert.Equal(t, 8, app.Menu.PageCount())
}

func TestApp_SettingsEscDiscards(t *testing.T) {
	app, m := newTestApp(t, nil)

	press(t, m, " ", ",", "l", "esc")
	assert.Equal(t, 0, app.Overlays.Len())
	assert.Equal(t, swipemenu.StyleFlexible, app.Menu.Options().TabView.Style)
}

func TestApp_PickerJumps(t *testing.T) {
	app, m := newTestApp(t, nil)

	press(t, m, " ", "j")
	require.Equal(t, 1, app.Overlays.Len())
	press(t, m, "down", "down", "enter")

	assert.Equal(t, 0, app.Overlays.Len())
	assert.Equal(t, 2, app.Menu.CurrentIndex())
}

func TestApp_ResetRestoresConfig(t *testing.T) {
	app, m := newTestApp(t, nil)
	press(t, m, " ", "t", "s", " ", "p", "+")

	press(t, m, " ", "R", "y")
	assert.Equal(t, 0, app.Overlays.Len())
	assert.Equal(t, swipemenu.StyleFlexible, app.Menu.Options().TabView.Style)
	assert.Equal(t, 10, app.Menu.PageCount())
}

func TestApp_OrientationKeepsIndex(t *testing.T) {
	app, m := newTestApp(t, func(c *config.Config) { c.Demo.InitialIndex = 5 })
	before := app.Delegate.Changes

	_, cmd := m.Update(orientationMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, swipemenu.StateOrientationRelayout, app.Menu.State())
	send(t, m, tea.WindowSizeMsg{Width: 40, Height: 50})

	assert.Equal(t, swipemenu.StateIdle, app.Menu.State())
	assert.Equal(t, 5, app.Menu.CurrentIndex())
	assert.Equal(t, before, app.Delegate.Changes)
}

func TestApp_Quit(t *testing.T) {
	_, m := newTestApp(t, nil)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
