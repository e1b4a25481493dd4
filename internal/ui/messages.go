package ui

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// StatusMsg replaces the host's status line.
type StatusMsg struct {
	Text  string
	Error bool
}
