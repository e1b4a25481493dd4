package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmKeys are the bindings a ConfirmModal answers to.
type ConfirmKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys accepts y/Enter and refuses n/Esc.
func DefaultConfirmKeys() ConfirmKeys {
	return ConfirmKeys{
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y/enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
	}
}

// ConfirmModal asks a yes/no question before running OnConfirm.
type ConfirmModal struct {
	Title     string
	Label     string
	Details   string // shown under the label when set
	OnConfirm func() tea.Msg
	Keys      ConfirmKeys
	warning   bool
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a confirmation modal with the default keys.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{
		Title:     title,
		Label:     label,
		OnConfirm: onConfirm,
		Keys:      DefaultConfirmKeys(),
	}
}

// WithDetails adds a detail line.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// AsWarning draws the modal with the danger palette.
func (m *ConfirmModal) AsWarning() *ConfirmModal {
	m.warning = true
	return m
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.Keys.Cancel):
		return m, func() tea.Msg { return DismissModalMsg{} }
	case key.Matches(k, m.Keys.Confirm) && m.OnConfirm != nil:
		return m, m.OnConfirm
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	box, title := ModalStyles.BoxDefault, ModalStyles.Title
	if m.warning {
		box, title = ModalStyles.BoxWarning, ModalStyles.TitleWarning
	}
	h := help.New()
	h.Styles.ShortKey = Styles.Selected
	h.Styles.ShortDesc = ModalStyles.Help
	h.Styles.ShortSeparator = ModalStyles.Help

	rows := []string{title.Render(m.Title), "", ModalStyles.Label.Render(m.Label)}
	if m.Details != "" {
		rows = append(rows, ModalStyles.Details.Render(m.Details))
	}
	rows = append(rows, "", h.ShortHelpView([]key.Binding{m.Keys.Confirm, m.Keys.Cancel}))
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
