package demo

import (
	"fmt"
	"log/slog"

	"swipemenu/internal/swipemenu"
)

// LogDelegate logs every notification and remembers the last index change
// for the status line.
type LogDelegate struct {
	logger  *slog.Logger
	title   func(int) string
	Last    string
	Changes int
}

var _ swipemenu.Delegate = (*LogDelegate)(nil)

// NewLogDelegate creates a delegate resolving titles with title.
func NewLogDelegate(logger *slog.Logger, title func(int) string) *LogDelegate {
	return &LogDelegate{logger: logger, title: title}
}

func (d *LogDelegate) WillSetup(index int) {
	d.logger.Debug("will setup", "index", index)
}

func (d *LogDelegate) DidSetup(index int) {
	d.logger.Info("setup", "index", index, "title", d.title(index))
}

func (d *LogDelegate) WillChangeIndex(from, to int) {
	d.logger.Debug("will change index", "from", from, "to", to)
}

func (d *LogDelegate) DidChangeIndex(from, to int) {
	d.Changes++
	d.Last = fmt.Sprintf("%s → %s", d.title(from), d.title(to))
	d.logger.Info("index changed", "from", from, "to", to, "title", d.title(to))
}
