package menu

import (
	"fmt"

	"github.com/sweeney/flight-panel/internal/settings"
)

// Sender delivers outbound control events to the host.
type Sender interface {
	// SendEncoder emits count single-step events for the named encoder.
	SendEncoder(name string, count int, increase bool)
	// SendButton emits one button event.
	SendButton(name string, push int)
}

// Source exposes the instrument values shown by the menu items.
type Source interface {
	HeadingBug() int
	GroundTrack() float64
	TargetAltitude() int
	NavGPS() bool
	OBSActive() bool
	OBSCourse() float64
	CDICourse() float64
}

// Encoder event names.
const (
	EncHeading   = "encHeading"
	EncTrack     = "encTrack"
	EncTargetAlt = "encTargetAlt"
	EncCourse    = "encCourse"
	EncKohls     = "encKohls"
)

// Button event names.
const (
	BtnHSIEncoder = "btnHsiEncoder"
	BtnPFDEncoder = "btnPfdEncoder"
)

// BearingOptions are the selectable bearing pointer sources.
var BearingOptions = []Option{
	{"Off", settings.BearingOff},
	{"GPS", settings.BearingGPS},
	{"VLOC1", settings.BearingVLOC1},
	{"VLOC2", settings.BearingVLOC2},
	{"ADF", settings.BearingADF},
}

// BearingName returns the label of a bearing source, or "???".
func BearingName(v int) string {
	for _, o := range BearingOptions {
		if o.Value == v {
			return o.Label
		}
	}
	return "???"
}

// Bump sends |delta| encoder steps in the direction of delta.
func Bump(out Sender, name string, delta int) {
	if delta == 0 {
		return
	}
	n := delta
	if n < 0 {
		n = -n
	}
	out.SendEncoder(name, n, delta > 0)
}

// item is a table-driven Item.
type item struct {
	title   string
	icon    Icon
	color   Color
	value   func() string
	visible func() bool
	turn    func(delta int)
	press   func(c *Controller)
}

func (i *item) Title() string { return i.title }
func (i *item) Icon() Icon    { return i.icon }
func (i *item) Color() Color  { return i.color }

func (i *item) Value() string {
	if i.value == nil {
		return ""
	}
	return i.value()
}

func (i *item) Visible() bool {
	return i.visible == nil || i.visible()
}

func (i *item) Turn(delta int) {
	if i.turn != nil {
		i.turn(delta)
	}
}

func (i *item) Press(c *Controller) {
	if i.press != nil {
		i.press(c)
	}
}

func back() Item {
	return &item{title: "Back", icon: BackIcon, press: (*Controller).Close}
}

// encoderItem is adjusted by forwarding turns to the host as encoder bumps.
func encoderItem(title string, color Color, out Sender, name string, value func() string) *item {
	it := &item{
		title: title,
		color: color,
		value: value,
		turn:  func(delta int) { Bump(out, name, delta) },
	}
	it.press = func(c *Controller) { c.Adjust(it) }
	return it
}

func degrees(v int) string { return fmt.Sprintf("%03d°", v) }

func device(title string, icon Icon, to settings.DeviceType, switchTo func(settings.DeviceType)) Item {
	return &item{
		title: title,
		icon:  icon,
		press: func(c *Controller) {
			c.Close()
			if switchTo != nil {
				switchTo(to)
			}
		},
	}
}

// PFDItems returns the primary flight display menu.
func PFDItems(src Source, out Sender, switchTo func(settings.DeviceType)) []Item {
	heading := encoderItem("Heading", Cyan, out, EncHeading, func() string {
		return degrees(src.HeadingBug())
	})
	track := encoderItem("Track", Magenta, out, EncTrack, func() string {
		return degrees(int(src.GroundTrack()))
	})
	track.visible = func() bool { return !src.NavGPS() }
	altitude := encoderItem("Altitude", Cyan, out, EncTargetAlt, func() string {
		if src.TargetAltitude() == 0 {
			return "----"
		}
		return itoa(src.TargetAltitude())
	})
	setup := &item{title: "Setup", icon: SetupIcon, press: (*Controller).BrowseSettings}

	return []Item{
		back(),
		heading,
		track,
		altitude,
		device("HSI", HSIIcon, settings.HSI, switchTo),
		setup,
	}
}

// HSIItems returns the horizontal situation indicator menu. Bearing
// selections are written into s.
func HSIItems(src Source, s *settings.Settings, out Sender, switchTo func(settings.DeviceType)) []Item {
	heading := encoderItem("Heading", Cyan, out, EncHeading, func() string {
		return degrees(src.HeadingBug())
	})
	loc := encoderItem("LOC Crse", Green, out, EncCourse, func() string {
		return degrees(int(src.OBSCourse()))
	})
	loc.visible = func() bool { return !src.NavGPS() }
	obs := encoderItem("OBS Crse", Magenta, out, EncCourse, func() string {
		return degrees(int(src.CDICourse()))
	})
	obs.visible = func() bool { return src.OBSActive() && src.NavGPS() }

	bearing := func(title string, target *int) Item {
		return &item{
			title: title,
			color: Cyan,
			value: func() string { return BearingName(*target) },
			press: func(c *Controller) { c.Select(BearingOptions, target) },
		}
	}

	return []Item{
		back(),
		heading,
		loc,
		obs,
		bearing("Bearing 1", &s.Bearing1),
		bearing("Bearing 2", &s.Bearing2),
		device("PFD", PFDIcon, settings.PFD, switchTo),
	}
}
