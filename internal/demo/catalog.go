package demo

import (
	"fmt"

	"swipemenu/internal/swipemenu"
	"swipemenu/internal/ui"
)

// Catalog is the demo's data source: one scrollable page per name. Pages are
// created on first use and kept so IndexOf can resolve them by identity.
type Catalog struct {
	base  []string
	names []string
	pages []*ui.ScrollView
}

var _ swipemenu.DataSource = (*Catalog)(nil)

// NewCatalog creates a catalog over names. Resize grows it by cycling names.
func NewCatalog(names []string) *Catalog {
	c := &Catalog{base: append([]string(nil), names...)}
	c.Resize(len(names))
	return c
}

// NumberOfPages implements swipemenu.DataSource.
func (c *Catalog) NumberOfPages() int { return len(c.names) }

// TitleForPage implements swipemenu.DataSource.
func (c *Catalog) TitleForPage(i int) string {
	if i < 0 || i >= len(c.names) {
		return ""
	}
	return c.names[i]
}

// PageAt implements swipemenu.DataSource.
func (c *Catalog) PageAt(i int) ui.View {
	if c.pages[i] == nil {
		c.pages[i] = ui.NewScrollView(c.names[i], pageLines(i, c.names[i]))
	}
	return c.pages[i]
}

// IndexOf implements swipemenu.DataSource.
func (c *Catalog) IndexOf(v ui.View) (int, bool) {
	sv, ok := v.(*ui.ScrollView)
	if !ok {
		return 0, false
	}
	for i, p := range c.pages {
		if p == sv {
			return i, true
		}
	}
	return 0, false
}

// Names returns a copy of the page titles.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Resize sets the page count, keeping existing pages.
func (c *Catalog) Resize(n int) {
	n = max(n, 0)
	if n <= len(c.names) {
		c.names = c.names[:n]
		c.pages = c.pages[:n]
		return
	}
	for i := len(c.names); i < n; i++ {
		c.names = append(c.names, c.nameFor(i))
		c.pages = append(c.pages, nil)
	}
}

// Reset restores the initial names and drops every page.
func (c *Catalog) Reset() {
	c.names, c.pages = nil, nil
	c.Resize(len(c.base))
}

func (c *Catalog) nameFor(i int) string {
	if len(c.base) == 0 {
		return fmt.Sprintf("Page %d", i+1)
	}
	name := c.base[i%len(c.base)]
	if round := i / len(c.base); round > 0 {
		name = fmt.Sprintf("%s %d", name, round+1)
	}
	return name
}

func pageLines(i int, name string) []string {
	lines := []string{
		"",
		ui.Styles.Muted.Render(fmt.Sprintf("No. %03d", i+1)),
		"",
		fmt.Sprintf("This is the %s page.", name),
		"Swipe with H/L (shift+←/→), the mouse wheel, or a drag.",
		"Tab moves focus between the tab strip and the page.",
		"",
	}
	for n := 1; n <= 24; n++ {
		lines = append(lines, fmt.Sprintf("  %s entry %02d", name, n))
	}
	return lines
}
