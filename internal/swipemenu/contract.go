package swipemenu

import "swipemenu/internal/ui"

// DataSource supplies pages. Answers must stay consistent between calls
// within one reload cycle.
type DataSource interface {
	// NumberOfPages returns the page count.
	NumberOfPages() int
	// TitleForPage returns the tab title for index.
	TitleForPage(index int) string
	// PageAt returns the host-owned page for index.
	PageAt(index int) ui.View
	// IndexOf resolves a page previously returned by PageAt.
	IndexOf(page ui.View) (int, bool)
}

// Delegate observes setup and index changes.
// Embed NopDelegate to implement only the hooks you need.
type Delegate interface {
	// WillSetup is called before the widget builds itself at index.
	WillSetup(index int)
	// DidSetup is called after the widget is built at index.
	DidSetup(index int)
	// WillChangeIndex is called once before a committed index change.
	// A ReloadData that lands before the change is placed cancels it: no
	// DidChangeIndex follows, and WillSetup/DidSetup report the rebuilt index.
	WillChangeIndex(from, to int)
	// DidChangeIndex is called once after a committed index change.
	DidChangeIndex(from, to int)
}

// NopDelegate implements Delegate with no-ops.
type NopDelegate struct{}

func (NopDelegate) WillSetup(int)            {}
func (NopDelegate) DidSetup(int)             {}
func (NopDelegate) WillChangeIndex(int, int) {}
func (NopDelegate) DidChangeIndex(int, int)  {}

var _ Delegate = NopDelegate{}
