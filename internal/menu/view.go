package menu

import "strconv"

// Row is one rendered menu line.
type Row struct {
	Title       string
	Value       string
	Color       Color
	Icon        Icon
	Highlighted bool
}

// View is what the renderer needs to draw the menu.
type View struct {
	Active bool
	State  State

	// Items holds the visible items while Browsing.
	Items []Row

	// Adjusting is the item being adjusted.
	Adjusting *Row

	// Options and Selected describe the Selecting popup.
	Options  []Option
	Selected int

	// Settings is the settings list, Back first.
	Settings []Row
}

// View returns the current presentation of the menu.
func (c *Controller) View() View {
	v := View{Active: c.active, State: c.state}
	if !c.active {
		return v
	}
	switch c.state {
	case Browsing:
		for i, it := range c.items {
			if !it.Visible() {
				continue
			}
			v.Items = append(v.Items, rowOf(it, i == c.highlight))
		}
	case Adjusting:
		if c.adjusting != nil {
			r := rowOf(c.adjusting, true)
			v.Adjusting = &r
		}
	case Selecting:
		v.Options = c.options
		v.Selected = c.selection
	case SettingsBrowsing:
		v.Settings = append(v.Settings, Row{Title: "Back", Icon: BackIcon, Highlighted: c.scroll == 0})
		for i, d := range c.defs {
			v.Settings = append(v.Settings, Row{
				Title:       d.Name,
				Value:       itoa(*d.Value),
				Color:       Yellow,
				Highlighted: c.scroll == i+1,
			})
		}
	}
	return v
}

func rowOf(it Item, highlighted bool) Row {
	return Row{
		Title:       it.Title(),
		Value:       it.Value(),
		Color:       it.Color(),
		Icon:        it.Icon(),
		Highlighted: highlighted,
	}
}

func itoa(v int) string { return strconv.Itoa(v) }
