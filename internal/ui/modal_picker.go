package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// PickerModal is a filterable list modal. Enter reports the chosen item's
// position in the original list.
type PickerModal struct {
	list     list.Model
	onSelect func(index int) tea.Msg
}

type pickerItem struct {
	title string
	index int
}

func (p pickerItem) FilterValue() string { return p.title }
func (p pickerItem) Title() string       { return p.title }
func (p pickerItem) Description() string { return "" }

// Ensure PickerModal implements View.
var _ View = (*PickerModal)(nil)

// NewPickerModal creates a picker over names.
func NewPickerModal(title string, names []string, selected int, onSelect func(index int) tea.Msg) *PickerModal {
	items := make([]list.Item, len(names))
	for i, n := range names {
		items[i] = pickerItem{title: n, index: i}
	}
	l := list.New(items, NewCompactListDelegate(), 40, 12)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	if selected >= 0 && selected < len(items) {
		l.Select(selected)
	}
	return &PickerModal{list: l, onSelect: onSelect}
}

// Init implements View.
func (m *PickerModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *PickerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			if sel, ok := m.list.SelectedItem().(pickerItem); ok && m.onSelect != nil {
				idx := sel.index
				return m, func() tea.Msg { return m.onSelect(idx) }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *PickerModal) View() string {
	help := "Enter: select  /: filter  Esc: cancel"
	return ModalStyles.BoxCompact.Render(m.list.View() + "\n" + ModalStyles.Help.Render(help))
}
