package ui

import "github.com/charmbracelet/lipgloss"

// ModalStyles groups the styles modals draw with.
var ModalStyles = struct {
	BoxDefault   lipgloss.Style
	BoxWarning   lipgloss.Style
	BoxCompact   lipgloss.Style
	Title        lipgloss.Style
	TitleWarning lipgloss.Style
	Label        lipgloss.Style
	Help         lipgloss.Style
	Details      lipgloss.Style
}{
	BoxDefault:   Styles.Box,
	BoxWarning:   Styles.BoxDanger,
	BoxCompact:   Styles.BoxCompact,
	Title:        Styles.Title,
	TitleWarning: Styles.Danger.Bold(true),
	Label:        Styles.Label,
	Help:         Styles.Muted,
	Details:      Styles.Details,
}
