package swipemenu

import (
	"errors"
	"fmt"
	"time"
)

// TabStyle selects how tab item widths are computed.
type TabStyle int

const (
	// StyleFlexible sizes each item to its title (or ItemView.Width).
	StyleFlexible TabStyle = iota
	// StyleSegmented splits the visible width evenly across items.
	StyleSegmented
)

func (s TabStyle) String() string {
	switch s {
	case StyleFlexible:
		return "flexible"
	case StyleSegmented:
		return "segmented"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s TabStyle) MarshalText() ([]byte, error) {
	if s != StyleFlexible && s != StyleSegmented {
		return nil, fmt.Errorf("invalid tab style %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *TabStyle) UnmarshalText(b []byte) error {
	switch string(b) {
	case "flexible", "":
		*s = StyleFlexible
	case "segmented":
		*s = StyleSegmented
	default:
		return fmt.Errorf("invalid tab style %q", string(b))
	}
	return nil
}

// Addition selects the indicator drawn for the selected tab.
type Addition int

const (
	AdditionUnderline Addition = iota
	AdditionCircle
	AdditionNone
)

func (a Addition) String() string {
	switch a {
	case AdditionUnderline:
		return "underline"
	case AdditionCircle:
		return "circle"
	case AdditionNone:
		return "none"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Addition) MarshalText() ([]byte, error) {
	if a < AdditionUnderline || a > AdditionNone {
		return nil, fmt.Errorf("invalid addition %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Addition) UnmarshalText(b []byte) error {
	switch string(b) {
	case "underline", "":
		*a = AdditionUnderline
	case "circle":
		*a = AdditionCircle
	case "none":
		*a = AdditionNone
	default:
		return fmt.Errorf("invalid addition %q", string(b))
	}
	return nil
}

// Insets are left/right column insets.
type Insets struct {
	Left  int `yaml:"left"`
	Right int `yaml:"right"`
}

// ItemViewOptions style a single tab item.
type ItemViewOptions struct {
	// Width is the item width when the strip does not fit widths to titles.
	Width int `yaml:"width"`
	// Margin is the padding on each side of the title.
	Margin            int    `yaml:"margin"`
	TextColor         string `yaml:"text_color"`
	SelectedTextColor string `yaml:"selected_text_color"`
	Bold              bool   `yaml:"bold"`
}

// UnderlineOptions style the underline indicator.
type UnderlineOptions struct {
	Char string `yaml:"char"`
}

// AdditionViewOptions style the indicator.
type AdditionViewOptions struct {
	// Padding shrinks the indicator inside the item frame.
	Padding Insets `yaml:"padding"`
	Color   string `yaml:"color"`
	// IsAnimationOnSwipeEnable moves the indicator with the swipe ratio.
	// When false the indicator only moves on settle.
	IsAnimationOnSwipeEnable bool             `yaml:"animation_on_swipe"`
	Underline                UnderlineOptions `yaml:"underline"`
}

// TabViewOptions configure the tab strip.
type TabViewOptions struct {
	Height     int      `yaml:"height"`
	Margin     int      `yaml:"margin"`
	Background string   `yaml:"background"`
	Style      TabStyle `yaml:"style"`
	Addition   Addition `yaml:"addition"`
	// NeedsAdjustItemViewWidth fits flexible items to their titles.
	NeedsAdjustItemViewWidth bool `yaml:"adjust_item_width"`
	// NeedsConvertTextColorRatio blends item text colours with the swipe ratio.
	NeedsConvertTextColorRatio bool                `yaml:"convert_text_color_ratio"`
	IsSafeAreaEnabled          bool                `yaml:"safe_area"`
	RuleColor                  string              `yaml:"rule_color"`
	ItemView                   ItemViewOptions     `yaml:"item_view"`
	AdditionView               AdditionViewOptions `yaml:"addition_view"`
}

// ContentAreaOptions configure the page container.
type ContentAreaOptions struct {
	Background        string `yaml:"background"`
	IsScrollEnabled   bool   `yaml:"scroll_enabled"`
	IsSafeAreaEnabled bool   `yaml:"safe_area"`
	// TransitionDuration is the length of a settle or an animated jump.
	// Zero settles immediately.
	TransitionDuration time.Duration `yaml:"transition_duration"`
	FrameInterval      time.Duration `yaml:"frame_interval"`
	// SwipeCommitRatio is the progress at or beyond which a released drag
	// commits to the neighbouring page.
	SwipeCommitRatio float64 `yaml:"swipe_commit_ratio"`
}

// Options is the widget configuration. It is copied into the tab strip and
// page container at setup; changes apply on the next ReloadData.
type Options struct {
	TabView     TabViewOptions     `yaml:"tab_view"`
	ContentArea ContentAreaOptions `yaml:"content_area"`
	// SafeArea is applied to each area whose IsSafeAreaEnabled is set.
	SafeArea Insets `yaml:"safe_area_insets"`
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		TabView: TabViewOptions{
			Height:                     2,
			Style:                      StyleFlexible,
			Addition:                   AdditionUnderline,
			NeedsAdjustItemViewWidth:   true,
			NeedsConvertTextColorRatio: true,
			IsSafeAreaEnabled:          true,
			RuleColor:                  "241",
			ItemView: ItemViewOptions{
				Width:             12,
				Margin:            2,
				TextColor:         "#AAAAAA",
				SelectedTextColor: "#FFFFFF",
				Bold:              true,
			},
			AdditionView: AdditionViewOptions{
				Color:                    "#FFFFFF",
				IsAnimationOnSwipeEnable: true,
				Underline:                UnderlineOptions{Char: "━"},
			},
		},
		ContentArea: ContentAreaOptions{
			IsScrollEnabled:    true,
			IsSafeAreaEnabled:  true,
			TransitionDuration: 250 * time.Millisecond,
			FrameInterval:      16 * time.Millisecond,
			SwipeCommitRatio:   0.5,
		},
		SafeArea: Insets{Left: 1, Right: 1},
	}
}

// SetSafeAreaEnabled toggles safe-area insets for both areas.
func (o *Options) SetSafeAreaEnabled(enabled bool) {
	o.TabView.IsSafeAreaEnabled = enabled
	o.ContentArea.IsSafeAreaEnabled = enabled
}

// Validate reports values the widget cannot honour as given.
func (o Options) Validate() error {
	var errs []error
	if o.TabView.Height < 1 {
		errs = append(errs, fmt.Errorf("tab_view.height %d < 1", o.TabView.Height))
	}
	if o.TabView.ItemView.Width < 1 {
		errs = append(errs, fmt.Errorf("tab_view.item_view.width %d < 1", o.TabView.ItemView.Width))
	}
	if o.TabView.Margin < 0 || o.TabView.ItemView.Margin < 0 {
		errs = append(errs, errors.New("tab margins must not be negative"))
	}
	if o.SafeArea.Left < 0 || o.SafeArea.Right < 0 {
		errs = append(errs, errors.New("safe area insets must not be negative"))
	}
	if r := o.ContentArea.SwipeCommitRatio; r <= 0 || r > 1 {
		errs = append(errs, fmt.Errorf("content_area.swipe_commit_ratio %v not in (0,1]", r))
	}
	if o.ContentArea.TransitionDuration < 0 {
		errs = append(errs, errors.New("content_area.transition_duration must not be negative"))
	}
	if o.ContentArea.TransitionDuration > 0 && o.ContentArea.FrameInterval <= 0 {
		errs = append(errs, errors.New("content_area.frame_interval must be positive when animating"))
	}
	return errors.Join(errs...)
}

// normalized replaces values Validate would reject with defaults.
func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.TabView.Height < 1 {
		o.TabView.Height = d.TabView.Height
	}
	if o.TabView.ItemView.Width < 1 {
		o.TabView.ItemView.Width = d.TabView.ItemView.Width
	}
	o.TabView.Margin = max(o.TabView.Margin, 0)
	o.TabView.ItemView.Margin = max(o.TabView.ItemView.Margin, 0)
	o.SafeArea.Left = max(o.SafeArea.Left, 0)
	o.SafeArea.Right = max(o.SafeArea.Right, 0)
	if r := o.ContentArea.SwipeCommitRatio; r <= 0 || r > 1 {
		o.ContentArea.SwipeCommitRatio = d.ContentArea.SwipeCommitRatio
	}
	if o.ContentArea.TransitionDuration < 0 {
		o.ContentArea.TransitionDuration = 0
	}
	if o.ContentArea.FrameInterval <= 0 {
		o.ContentArea.FrameInterval = d.ContentArea.FrameInterval
	}
	if o.TabView.AdditionView.Underline.Char == "" {
		o.TabView.AdditionView.Underline.Char = d.TabView.AdditionView.Underline.Char
	}
	return o
}

// insets returns the safe-area insets for an area when enabled.
func (o Options) insets(enabled bool) Insets {
	if !enabled {
		return Insets{}
	}
	return o.SafeArea
}
