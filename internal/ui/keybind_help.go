package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// RenderKeybindHelp produces the transient help bar shown after SPC.
// When the handler has buffered a prefix (e.g. "SPC t"), shows next-level hints.
func RenderKeybindHelp(h *KeyHandler) string {
	if h == nil || h.Registry == nil {
		return ""
	}
	seq := ""
	if len(h.Buffer) > 1 {
		seq = h.Sequence()
	}
	bindings := Bindings(h.Registry.LeaderHints(seq))
	if len(bindings) == 0 {
		return ""
	}
	bindings = append(bindings, key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	))

	helpModel := help.New()
	helpModel.Styles.ShortKey = Styles.Selected
	helpModel.Styles.ShortDesc = Styles.Muted
	helpModel.Styles.ShortSeparator = Styles.Muted

	prefix := h.LeaderSeq
	if seq != "" {
		prefix = seq
	}
	return Styles.HelpBox.Render(Styles.Muted.Render(prefix) + " " + helpModel.ShortHelpView(bindings))
}
