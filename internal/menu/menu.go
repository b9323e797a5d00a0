// Package menu implements the encoder-driven on-screen menu.
//
// A Controller owns a fixed list of Items and a state machine:
//
//	Browsing          turn moves the highlight over visible items, press
//	                  activates the highlighted item
//	Adjusting         turn is forwarded to the item being adjusted, press
//	                  commits
//	Selecting         turn moves over a list of options, press stores the
//	                  chosen value and closes the menu
//	SettingsBrowsing  turn scrolls the numeric settings list, press adjusts
//	                  the chosen setting
//
// Controllers are not safe for concurrent use; the frame loop owns them.
package menu

import (
	"github.com/sweeney/flight-panel/internal/settings"
)

// State is the controller state.
type State int

const (
	Browsing State = iota
	Adjusting
	Selecting
	SettingsBrowsing
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "BROWSING"
	case Adjusting:
		return "ADJUSTING"
	case Selecting:
		return "SELECTING"
	case SettingsBrowsing:
		return "SETTINGS_BROWSING"
	default:
		return "UNKNOWN"
	}
}

// Color is the display color of an item value.
type Color int

const (
	White Color = iota
	Cyan
	Magenta
	Green
	Yellow
)

// Icon identifies an optional item icon.
type Icon int

const (
	NoIcon Icon = iota
	BackIcon
	SetupIcon
	HSIIcon
	PFDIcon
)

// Item is one menu entry.
type Item interface {
	Title() string
	Value() string
	Color() Color
	Icon() Icon
	Visible() bool
	// Turn receives encoder movement while the item is being adjusted.
	Turn(delta int)
	// Press is called when the item is activated from Browsing. It may move
	// the controller to another state.
	Press(c *Controller)
}

// Option is one choice in Selecting.
type Option struct {
	Label string
	Value int
}

// Controller runs the menu state machine.
type Controller struct {
	items     []Item
	defs      []settings.Def
	persist   func()
	active    bool
	state     State
	highlight int

	adjusting Item
	transient *settingItem

	options   []Option
	target    *int
	selection int

	scroll int // 0 is the Back row of the settings list
}

// NewController returns a closed controller over items. defs is the list
// shown in SettingsBrowsing and may be empty. persist is called whenever a
// setting changes; it may be nil.
func NewController(items []Item, defs []settings.Def, persist func()) *Controller {
	if persist == nil {
		persist = func() {}
	}
	c := &Controller{items: items, defs: defs, persist: persist}
	c.highlight = c.firstVisible()
	return c
}

func (c *Controller) firstVisible() int {
	for i, it := range c.items {
		if it.Visible() {
			return i
		}
	}
	return 0
}

// Active reports whether the menu is open.
func (c *Controller) Active() bool { return c.active }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Highlight returns the index of the highlighted item.
func (c *Controller) Highlight() int { return c.highlight }

// Adjusting returns the item being adjusted, or nil.
func (c *Controller) Adjusting() Item { return c.adjusting }

// Open shows the menu in Browsing.
func (c *Controller) Open() {
	c.active = true
	c.state = Browsing
	if c.highlight >= len(c.items) || !c.items[c.highlight].Visible() {
		c.highlight = c.firstVisible()
	}
}

// Close hides the menu and abandons any adjustment or selection.
func (c *Controller) Close() {
	c.active = false
	c.reset(Browsing)
}

func (c *Controller) reset(s State) {
	c.state = s
	c.adjusting = nil
	c.transient = nil
	c.options = nil
	c.target = nil
	c.selection = 0
}

// Turn handles encoder movement.
func (c *Controller) Turn(delta int) {
	if !c.active || delta == 0 {
		return
	}
	switch c.state {
	case Browsing:
		c.highlight = c.nextVisible(c.highlight, delta)
	case Adjusting:
		if c.adjusting != nil {
			c.adjusting.Turn(delta)
		}
	case Selecting:
		c.selection = clamp(c.selection+sign(delta), 0, len(c.options)-1)
	case SettingsBrowsing:
		c.scroll = clamp(c.scroll+sign(delta), 0, len(c.defs))
	}
}

// nextVisible steps once in the direction of delta, wrapping around and
// skipping invisible items. It returns from when nothing else is visible.
func (c *Controller) nextVisible(from, delta int) int {
	n := len(c.items)
	if n == 0 {
		return from
	}
	step := sign(delta)
	idx := from
	for _i := 0; _i < n; _i++ {
		idx = ((idx+step)%n + n) % n
		if c.items[idx].Visible() {
			return idx
		}
	}
	return from
}

// Press handles an encoder button press.
func (c *Controller) Press() {
	if !c.active {
		return
	}
	switch c.state {
	case Browsing:
		if c.highlight < len(c.items) && c.items[c.highlight].Visible() {
			c.items[c.highlight].Press(c)
		}
	case Adjusting:
		if c.transient != nil {
			c.persist()
			c.reset(SettingsBrowsing)
			return
		}
		c.reset(Browsing)
	case Selecting:
		if c.target != nil && len(c.options) > 0 {
			*c.target = c.options[c.selection].Value
			c.persist()
		}
		c.Close()
	case SettingsBrowsing:
		if c.scroll == 0 {
			c.state = Browsing
			return
		}
		c.transient = &settingItem{def: c.defs[c.scroll-1]}
		c.adjusting = c.transient
		c.state = Adjusting
	}
}

// Adjust puts item into Adjusting.
func (c *Controller) Adjust(item Item) {
	c.adjusting = item
	c.state = Adjusting
}

// Select enters Selecting over options. The highlight starts at the option
// matching *target. The chosen value is written to target on press.
func (c *Controller) Select(options []Option, target *int) {
	if len(options) == 0 || target == nil {
		return
	}
	c.options = options
	c.target = target
	c.selection = 0
	for i, o := range options {
		if o.Value == *target {
			c.selection = i
			break
		}
	}
	c.state = Selecting
}

// BrowseSettings enters SettingsBrowsing on the Back row.
func (c *Controller) BrowseSettings() {
	c.scroll = 0
	c.state = SettingsBrowsing
}

// settingItem adjusts one numeric setting within its bounds. It only lives
// while that setting is being adjusted.
type settingItem struct {
	def settings.Def
}

func (s *settingItem) Title() string     { return s.def.Name }
func (s *settingItem) Value() string     { return itoa(*s.def.Value) }
func (s *settingItem) Color() Color      { return Yellow }
func (s *settingItem) Icon() Icon        { return NoIcon }
func (s *settingItem) Visible() bool     { return true }
func (s *settingItem) Press(*Controller) {}

func (s *settingItem) Turn(delta int) {
	*s.def.Value = s.def.Clamp(*s.def.Value + delta)
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
