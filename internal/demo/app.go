// Package demo is the host application around the swipe menu: a catalogue
// of pages, leader-key commands and settings overlays.
package demo

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/trace"

	"swipemenu/internal/config"
	"swipemenu/internal/swipemenu"
	"swipemenu/internal/ui"
	"swipemenu/internal/ui/textutil"
)

type (
	reloadMsg        struct{}
	cycleStyleMsg    struct{}
	cycleAdditionMsg struct{}
	orientationMsg   struct{}
	addPageMsg       struct{}
	removePageMsg    struct{}
	jumpNextMsg      struct{}
	openSettingsMsg  struct{}
	openPickerMsg    struct{}
	confirmResetMsg  struct{}
	resetMsg         struct{}
	jumpToMsg        struct{ Index int }
)

// footerHeight is the status line below the menu.
const footerHeight = 1

// App is the root model. It owns the menu, its data source and delegate.
type App struct {
	Menu       *swipemenu.SwipeMenuView
	Catalog    *Catalog
	Delegate   *LogDelegate
	KeyHandler *ui.KeyHandler
	Overlays   ui.OverlayStack

	cfg    *config.Config
	opts   swipemenu.Options
	logger *slog.Logger

	width, height int
	status        string
	statusErr     bool
}

// New builds the app from cfg. logger and tracer are handed to the menu.
func New(cfg *config.Config, logger *slog.Logger, tracer trace.Tracer) *App {
	a := &App{
		cfg:     cfg,
		opts:    cfg.Menu,
		logger:  logger,
		Catalog: NewCatalog(cfg.Demo.Pages),
	}
	a.Delegate = NewLogDelegate(logger, a.Catalog.TitleForPage)
	a.Menu = swipemenu.New(a.opts, a.Catalog, a.Delegate,
		swipemenu.WithLogger(logger),
		swipemenu.WithTracer(tracer),
	)
	a.KeyHandler = ui.NewKeyHandler(newRegistry())
	return a
}

func newRegistry() *ui.KeybindRegistry {
	msg := func(m tea.Msg) tea.Cmd { return func() tea.Msg { return m } }
	reg := ui.NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("ctrl+c", tea.Quit)
	reg.BindWithDesc("SPC r", msg(reloadMsg{}), "reload")
	reg.BindWithDesc("SPC n", msg(jumpNextMsg{}), "next page")
	reg.BindWithDesc("SPC j", msg(openPickerMsg{}), "jump to…")
	reg.BindWithDesc("SPC o", msg(orientationMsg{}), "relayout")
	reg.BindWithDesc("SPC ,", msg(openSettingsMsg{}), "settings")
	reg.BindWithDesc("SPC R", msg(confirmResetMsg{}), "reset")
	reg.Group("SPC t", "tabs")
	reg.BindWithDesc("SPC t s", msg(cycleStyleMsg{}), "style")
	reg.BindWithDesc("SPC t a", msg(cycleAdditionMsg{}), "indicator")
	reg.Group("SPC p", "pages")
	reg.BindWithDesc("SPC p +", msg(addPageMsg{}), "add")
	reg.BindWithDesc("SPC p -", msg(removePageMsg{}), "remove")
	return reg
}

// AsTeaModel returns a tea.Model for use with tea.NewProgram.
func (a *App) AsTeaModel() tea.Model {
	return &appModelAdapter{App: a}
}

// Ensure App can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps App to implement tea.Model.
type appModelAdapter struct {
	*App
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Menu.ReloadData(swipemenu.WithDefaultIndex(a.cfg.Demo.InitialIndex))
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, a.updateMenu(tea.WindowSizeMsg{Width: a.width, Height: max(a.height-footerHeight, 0)})
	case tea.KeyMsg:
		if cmd, handled := a.Overlays.Handle(msg); handled {
			return a, cmd
		}
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return a, cmd
		}
		return a, a.updateMenu(msg)
	case ui.DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case ui.StatusMsg:
		a.setStatus(msg.Text, msg.Error)
		return a, nil
	case reloadMsg:
		return a, a.reload("reloaded")
	case cycleStyleMsg:
		a.opts.TabView.Style = (a.opts.TabView.Style + 1) % 2
		return a, a.reload("style: " + a.opts.TabView.Style.String())
	case cycleAdditionMsg:
		a.opts.TabView.Addition = (a.opts.TabView.Addition + 1) % 3
		return a, a.reload("indicator: " + a.opts.TabView.Addition.String())
	case orientationMsg:
		return a, a.Menu.WillChangeOrientation()
	case addPageMsg:
		if a.Catalog.NumberOfPages() >= maxPages {
			a.setStatus(fmt.Sprintf("at most %d pages", maxPages), true)
			return a, nil
		}
		a.Catalog.Resize(a.Catalog.NumberOfPages() + 1)
		return a, a.reload(fmt.Sprintf("%d pages", a.Catalog.NumberOfPages()))
	case removePageMsg:
		a.Catalog.Resize(a.Catalog.NumberOfPages() - 1)
		return a, a.reload(fmt.Sprintf("%d pages", a.Catalog.NumberOfPages()))
	case jumpNextMsg:
		n := a.Menu.PageCount()
		if n == 0 {
			return a, nil
		}
		return a, a.jump((a.Menu.CurrentIndex() + 1) % n)
	case jumpToMsg:
		a.Overlays.Pop()
		return a, a.jump(msg.Index)
	case openPickerMsg:
		picker := ui.NewPickerModal("Jump to page", a.Catalog.Names(), a.Menu.CurrentIndex(),
			func(i int) tea.Msg { return jumpToMsg{Index: i} })
		a.Overlays.Push(ui.Overlay{ID: "jump", View: picker})
		return a, picker.Init()
	case openSettingsMsg:
		a.Overlays.Push(ui.Overlay{
			ID:      "settings",
			View:    NewSettingsModal(a.opts, a.Catalog.NumberOfPages()),
			Dismiss: []string{"esc"},
		})
		return a, nil
	case ApplySettingsMsg:
		a.Overlays.Pop()
		if err := msg.Options.Validate(); err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		a.opts = msg.Options
		a.Catalog.Resize(msg.Pages)
		return a, a.reload("settings applied")
	case confirmResetMsg:
		a.Overlays.Push(ui.Overlay{
			ID: "reset",
			View: ui.NewConfirmModal("Reset settings?", "Restore the configured options and pages.",
				func() tea.Msg { return resetMsg{} }).AsWarning(),
			Dismiss: []string{"esc"},
		})
		return a, nil
	case resetMsg:
		a.Overlays.Pop()
		a.opts = a.cfg.Menu
		a.Catalog.Reset()
		a.setStatus("settings reset", false)
		return a, a.Menu.ReloadData(
			swipemenu.WithOptions(a.opts),
			swipemenu.WithDefaultIndex(a.cfg.Demo.InitialIndex),
		)
	}
	return a, a.updateMenu(msg)
}

func (a *App) updateMenu(msg tea.Msg) tea.Cmd {
	_, cmd := a.Menu.Update(msg)
	return cmd
}

func (a *App) reload(status string) tea.Cmd {
	a.logger.Info("reload", "pages", a.Catalog.NumberOfPages(), "style", a.opts.TabView.Style.String())
	a.setStatus(status, false)
	return a.Menu.ReloadData(swipemenu.WithOptions(a.opts))
}

func (a *App) jump(index int) tea.Cmd {
	cmd, err := a.Menu.Jump(index, true)
	if err != nil {
		a.logger.Warn("jump failed", "index", index, "err", err)
		a.setStatus(err.Error(), true)
		return nil
	}
	return cmd
}

func (a *App) setStatus(s string, isErr bool) {
	a.status, a.statusErr = s, isErr
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if top, ok := a.Overlays.Peek(); ok {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, top.View.View())
	}
	footer := a.footer()
	if a.KeyHandler.LeaderWaiting {
		footer = ui.RenderKeybindHelp(a.KeyHandler)
	}
	lines := strings.Split(a.Menu.View(), "\n")
	if keep := max(a.height-lipgloss.Height(footer), 0); len(lines) > keep {
		lines = lines[:keep]
	}
	return strings.Join(lines, "\n") + "\n" + footer
}

func (a *App) footer() string {
	n := a.Menu.PageCount()
	if n == 0 {
		return ui.Styles.Empty.Render("no pages  SPC p +: add")
	}
	cur := a.Menu.CurrentIndex()
	left := ui.Styles.Status.Render(fmt.Sprintf("%d/%d %s", cur+1, n, a.Catalog.TitleForPage(cur)))
	var right string
	switch {
	case a.status != "" && a.statusErr:
		right = ui.Styles.Danger.Render(a.status)
	case a.status != "":
		right = ui.Styles.Muted.Render(a.status)
	case a.Delegate.Last != "":
		right = ui.Styles.Muted.Render(a.Delegate.Last)
	}
	line := left + "  " + right
	hint := ui.Styles.Muted.Render("SPC: commands  q: quit")
	if full := a.keyHelp() + "  " + hint; textutil.VisualWidthStyled(line)+textutil.VisualWidthStyled(full) < a.width {
		hint = full
	}
	if gap := a.width - textutil.VisualWidthStyled(line) - textutil.VisualWidthStyled(hint); gap > 0 {
		line += strings.Repeat(" ", gap) + hint
	}
	return lipgloss.NewStyle().MaxWidth(max(a.width, 1)).Render(line)
}

// keyHelp renders the menu's own bindings for wide terminals.
func (a *App) keyHelp() string {
	h := help.New()
	h.Styles.ShortKey = ui.Styles.Selected
	h.Styles.ShortDesc = ui.Styles.Muted
	h.Styles.ShortSeparator = ui.Styles.Muted
	return h.ShortHelpView(a.Menu.KeyMap().ShortHelp())
}
