// Package swipemenu is a Bubble Tea widget combining a horizontally scrollable
// tab strip with a paged content area.
//
// Selecting a tab switches to its page; swiping pages (mouse drag, horizontal
// wheel or the swipe keys) moves the selection indicator continuously with the
// scroll ratio and updates the selected tab when the swipe settles.
//
// The host supplies pages through a DataSource and observes index changes
// through a Delegate. SwipeMenuView owns one TabView and one PageContainer and
// is the only writer of the committed index; the two surfaces only emit events.
package swipemenu
