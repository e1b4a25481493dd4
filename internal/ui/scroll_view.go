package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultScrollWidth = 70
const defaultScrollHeight = 18

// ScrollView is a titled block of text with scrollback.
type ScrollView struct {
	Title    string
	lines    []string
	viewport viewport.Model
	width    int
	height   int
}

// Ensure ScrollView implements View and Sizer.
var (
	_ View  = (*ScrollView)(nil)
	_ Sizer = (*ScrollView)(nil)
)

// NewScrollView creates a view showing lines under title.
func NewScrollView(title string, lines []string) *ScrollView {
	v := &ScrollView{
		Title:    title,
		lines:    lines,
		viewport: viewport.New(defaultScrollWidth, defaultScrollHeight),
		width:    defaultScrollWidth,
		height:   defaultScrollHeight + 1,
	}
	v.refreshContent()
	return v
}

// Init implements View.
func (v *ScrollView) Init() tea.Cmd {
	return v.viewport.Init()
}

// SetSize implements Sizer. One row goes to the title.
func (v *ScrollView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.viewport.Width = max(width, 0)
	v.viewport.Height = max(height-1, 0)
	v.refreshContent()
}

// SetLines replaces the body.
func (v *ScrollView) SetLines(lines []string) {
	v.lines = lines
	v.refreshContent()
}

// ScrollPercent reports how far the body is scrolled, in [0,1].
func (v *ScrollView) ScrollPercent() float64 {
	return v.viewport.ScrollPercent()
}

// Update implements View.
func (v *ScrollView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.SetSize(msg.Width, msg.Height)
		return v, nil
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements View.
func (v *ScrollView) View() string {
	header := Styles.Title.Render(v.Title) + Styles.Muted.Render("  ↑/↓: scroll")
	if v.height <= 1 {
		return lipgloss.NewStyle().MaxWidth(v.width).Render(header)
	}
	return lipgloss.NewStyle().MaxWidth(v.width).Render(header) + "\n" + v.viewport.View()
}

func (v *ScrollView) refreshContent() {
	content := strings.Join(v.lines, "\n")
	if content == "" {
		content = Styles.Empty.Render("Nothing here yet.")
	}
	v.viewport.SetContent(content)
}
