package demo

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"swipemenu/internal/swipemenu"
	"swipemenu/internal/ui"
)

// ApplySettingsMsg carries edited options back to the app.
type ApplySettingsMsg struct {
	Options swipemenu.Options
	Pages   int
}

const maxPages = 40

type settingRow struct {
	label string
	value func(*SettingsModal) string
	// change steps the setting by +1 or -1.
	change func(m *SettingsModal, step int)
}

func toggle(b *bool) func(*SettingsModal, int) {
	return func(*SettingsModal, int) { *b = !*b }
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// SettingsModal edits the menu options and page count before a reload.
// j/k move, h/l or Enter change, a applies, Esc cancels.
type SettingsModal struct {
	opts   swipemenu.Options
	pages  int
	cursor int
	rows   []settingRow
}

var _ ui.View = (*SettingsModal)(nil)

// NewSettingsModal starts editing from opts and the current page count.
func NewSettingsModal(opts swipemenu.Options, pages int) *SettingsModal {
	m := &SettingsModal{opts: opts, pages: pages}
	tv, ca := &m.opts.TabView, &m.opts.ContentArea
	m.rows = []settingRow{
		{"Tab style", func(m *SettingsModal) string { return m.opts.TabView.Style.String() },
			func(m *SettingsModal, step int) {
				m.opts.TabView.Style = swipemenu.TabStyle(wrap(int(m.opts.TabView.Style)+step, 2))
			}},
		{"Indicator", func(m *SettingsModal) string { return m.opts.TabView.Addition.String() },
			func(m *SettingsModal, step int) {
				m.opts.TabView.Addition = swipemenu.Addition(wrap(int(m.opts.TabView.Addition)+step, 3))
			}},
		{"Fit items to titles", func(m *SettingsModal) string { return onOff(m.opts.TabView.NeedsAdjustItemViewWidth) },
			toggle(&tv.NeedsAdjustItemViewWidth)},
		{"Blend text colour", func(m *SettingsModal) string { return onOff(m.opts.TabView.NeedsConvertTextColorRatio) },
			toggle(&tv.NeedsConvertTextColorRatio)},
		{"Indicator follows swipe", func(m *SettingsModal) string { return onOff(m.opts.TabView.AdditionView.IsAnimationOnSwipeEnable) },
			toggle(&tv.AdditionView.IsAnimationOnSwipeEnable)},
		{"Safe area", func(m *SettingsModal) string { return onOff(m.opts.TabView.IsSafeAreaEnabled) },
			func(m *SettingsModal, _ int) { m.opts.SetSafeAreaEnabled(!m.opts.TabView.IsSafeAreaEnabled) }},
		{"Swipe enabled", func(m *SettingsModal) string { return onOff(m.opts.ContentArea.IsScrollEnabled) },
			toggle(&ca.IsScrollEnabled)},
		{"Pages", func(m *SettingsModal) string { return fmt.Sprint(m.pages) },
			func(m *SettingsModal, step int) { m.pages = min(max(m.pages+step, 0), maxPages) }},
	}
	return m
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

// Options returns the edited options.
func (m *SettingsModal) Options() swipemenu.Options { return m.opts }

// Pages returns the edited page count.
func (m *SettingsModal) Pages() int { return m.pages }

// Init implements View.
func (m *SettingsModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *SettingsModal) Update(msg tea.Msg) (ui.View, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "esc", "q":
		return m, func() tea.Msg { return ui.DismissModalMsg{} }
	case "up", "k":
		m.cursor = wrap(m.cursor-1, len(m.rows))
	case "down", "j":
		m.cursor = wrap(m.cursor+1, len(m.rows))
	case "right", "l", "enter", " ", "+":
		m.rows[m.cursor].change(m, 1)
	case "left", "h", "-":
		m.rows[m.cursor].change(m, -1)
	case "a":
		apply := ApplySettingsMsg{Options: m.opts, Pages: m.pages}
		return m, func() tea.Msg { return apply }
	}
	return m, nil
}

// View implements View.
func (m *SettingsModal) View() string {
	var b strings.Builder
	b.WriteString(ui.ModalStyles.Title.Render("Settings") + "\n\n")
	for i, r := range m.rows {
		line := fmt.Sprintf("%-24s %s", r.label, r.value(m))
		if i == m.cursor {
			b.WriteString(ui.Styles.Selected.Render("› " + line))
		} else {
			b.WriteString(ui.Styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + ui.ModalStyles.Help.Render("j/k: move  h/l: change  a: apply  Esc: cancel"))
	return ui.ModalStyles.BoxDefault.Render(b.String())
}
