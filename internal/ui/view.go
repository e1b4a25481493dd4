package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
// Host pages shown by the swipe menu are Views owned by the host.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Sizer is implemented by views that want their bounds pushed to them
// instead of receiving a tea.WindowSizeMsg.
type Sizer interface {
	SetSize(width, height int)
}

// Resize delivers a size to v, via SetSize when v implements Sizer and as a
// tea.WindowSizeMsg otherwise. Returns the updated view and any command.
func Resize(v View, width, height int) (View, tea.Cmd) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(Sizer); ok {
		s.SetSize(width, height)
		return v, nil
	}
	return v.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
