// Package panel composes the instrument from its parts: it feeds telemetry
// into the flight state, runs the power, altitude alert and menu state
// machines, routes encoder input and produces one Frame per update.
//
// A Panel is owned by a single goroutine (the frame loop). Telemetry from
// other goroutines must be handed over, not applied directly.
package panel

import (
	"log"
	"time"

	"github.com/sweeney/flight-panel/internal/filter"
	"github.com/sweeney/flight-panel/internal/logic"
	"github.com/sweeney/flight-panel/internal/menu"
	"github.com/sweeney/flight-panel/internal/settings"
	"github.com/sweeney/flight-panel/internal/store"
	"github.com/sweeney/flight-panel/internal/tape"
	"github.com/sweeney/flight-panel/internal/telemetry"
)

// StaleAfter is how long without telemetry before the link is flagged.
const StaleAfter = 3 * time.Second

// Input is one read of the encoder peripheral.
type Input struct {
	Delta  int
	Button logic.ButtonEvent // encoder push button
	Power  logic.ButtonEvent // extra (power) button
}

// Active reports whether the read carried any interaction.
func (in Input) Active() bool {
	return in.Delta != 0 || in.Button != logic.ButtonIdle || in.Power != logic.ButtonIdle
}

// Panel is one instrument.
type Panel struct {
	kv  store.KV
	out menu.Sender

	settings settings.Settings
	state    *telemetry.State
	power    *logic.Power
	alert    *logic.AltAlert
	menu     *menu.Controller
	trend    *filter.Trend

	speedTape   *tape.Tape
	altTape     *tape.Tape
	headingTape *tape.Tape
	bearing1    *filter.Channel
	bearing2    *filter.Channel

	brightnessOpen bool
	backlight      int
	redraw         bool
	lastTelemetry  time.Time
	frames         uint64
}

// New loads the settings from kv and builds the configured instrument. If
// the previous run switched devices, its flight state is restored.
func New(kv store.KV, out menu.Sender, now time.Time) (*Panel, error) {
	s, err := settings.Load(kv)
	if err != nil {
		return nil, err
	}
	if !s.Device.Valid() {
		s.Device = settings.ISIS
	}
	p := &Panel{
		kv:            kv,
		out:           out,
		settings:      s,
		power:         logic.NewPower(logic.PowerControl(s.PowerControl), s.Brightness),
		lastTelemetry: now,
	}
	p.build()
	p.restoreState()
	p.apply(p.power.Set(logic.PowerOn, now))
	return p, nil
}

// build (re)creates the per-device parts for p.settings.Device.
func (p *Panel) build() {
	d := p.settings.Device
	p.state = telemetry.NewState(d)
	p.alert = logic.NewAltAlert()
	p.trend = filter.NewTrend()
	p.brightnessOpen = false
	p.redraw = true

	bearing := filter.Params{Alpha: 0.25, Snap: 0.1}
	p.bearing1 = filter.NewChannel(filter.UnsignedAngle, bearing)
	p.bearing2 = filter.NewChannel(filter.UnsignedAngle, bearing)

	src := source{p.state}
	switch d {
	case settings.PFD:
		p.speedTape = tape.New(tape.Speed())
		p.altTape = tape.New(tape.Altitude())
		p.headingTape = tape.New(tape.Heading())
		p.menu = menu.NewController(menu.PFDItems(src, p.out, p.SwitchDevice), p.settings.Defs(), p.saveSettings)
	case settings.HSI:
		p.speedTape, p.altTape = nil, nil
		p.headingTape = tape.New(tape.Heading())
		p.menu = menu.NewController(menu.HSIItems(src, &p.settings, p.out, p.SwitchDevice), nil, p.saveSettings)
	default:
		p.speedTape = tape.New(tape.StandbySpeed())
		p.altTape = tape.New(tape.StandbyAltitude())
		p.headingTape = nil
		p.menu = nil
	}
}

// Device returns the instrument shown.
func (p *Panel) Device() settings.DeviceType { return p.settings.Device }

// Settings returns a copy of the current settings.
func (p *Panel) Settings() settings.Settings { return p.settings }

// PowerState returns the power lifecycle state.
func (p *Panel) PowerState() logic.PowerState { return p.power.State() }

// AlertState returns the altitude alert state.
func (p *Panel) AlertState() logic.AlertState { return p.alert.State() }

// Brightness returns the brightness percentage.
func (p *Panel) Brightness() int { return p.power.Brightness() }

// Backlight returns the backlight level, 0..255.
func (p *Panel) Backlight() int { return p.backlight }

// LED reports whether the encoder LED should be lit.
func (p *Panel) LED() bool { return p.power.State() == logic.PowerOn }

// Frames returns the number of frames composed.
func (p *Panel) Frames() uint64 { return p.frames }

// LastTelemetry returns when the last telemetry message arrived.
func (p *Panel) LastTelemetry() time.Time { return p.lastTelemetry }

// BatteryPercent returns the estimated battery charge.
func (p *Panel) BatteryPercent(now time.Time) int { return p.power.BatteryPercent(now) }

// SetValue applies one telemetry message.
func (p *Panel) SetValue(id int, value string, now time.Time) {
	p.lastTelemetry = now
	if id > 0 && p.power.Control() == logic.DeviceManaged {
		p.apply(p.power.Set(logic.PowerOn, now))
	}

	cmd := p.state.Apply(id, value)
	switch cmd.Action {
	case telemetry.SetPower:
		p.apply(p.power.Set(cmd.Power, now))
	case telemetry.SwitchDevice:
		p.SwitchDevice(cmd.Device)
	case telemetry.SetBacklight:
		p.backlight = cmd.Level
	case telemetry.SetPowerControl:
		p.power.SetControl(cmd.Control)
		p.settings.PowerControl = int(cmd.Control)
		p.saveSettings()
		log.Printf("panel: power control %s", cmd.Control)
	case telemetry.SetVSpeeds:
		if p.settings.SetVSpeeds(cmd.Text) {
			p.saveSettings()
		}
	}
}

// SwitchDevice saves the flight state and rebuilds the panel as device d,
// which picks the saved state up again.
func (p *Panel) SwitchDevice(d settings.DeviceType) {
	if !d.Valid() || d == p.settings.Device {
		return
	}
	log.Printf("panel: switching %s -> %s", p.settings.Device, d)
	p.saveState()
	p.settings.Device = d
	p.saveSettings()
	p.build()
	p.restoreState()
}

// Update advances the panel by one frame: timed power transitions, input,
// smoothing and alerting. It returns the frame to draw.
func (p *Panel) Update(in Input, now time.Time) Frame {
	p.apply(p.power.Tick(now))

	if in.Active() {
		consumed, tr := p.power.HandleInput(true, in.Power, now)
		p.apply(tr)
		if !consumed {
			p.route(in)
		}
	}

	if p.power.State() == logic.PowerOff {
		return Frame{Device: p.settings.Device, Power: logic.PowerOff, Blank: true}
	}

	p.state.Step()
	p.bearing1.Set(p.state.BearingAngle(p.settings.Bearing1))
	p.bearing2.Set(p.state.BearingAngle(p.settings.Bearing2))
	p.bearing1.Step()
	p.bearing2.Step()

	if p.speedTape != nil {
		speed := p.state.Airspeed.Value()
		if speed < p.speedTape.Config().Alive {
			p.trend.Reset()
		} else {
			p.trend.Update(speed, now)
		}
	}
	if p.settings.Device == settings.PFD {
		p.alert.SetTarget(p.state.TargetAltitude)
		if p.state.TargetAltitude != 0 {
			p.alert.Update(p.state.Altitude.Value(), now)
		}
	}

	f := p.compose(now)
	p.frames++
	p.redraw = false
	return f
}

// route handles input that the power lifecycle did not take.
func (p *Panel) route(in Input) {
	if in.Button == logic.ButtonLongPressed && (p.menu == nil || !p.menu.Active()) {
		btn := menu.BtnPFDEncoder
		if p.settings.Device == settings.HSI {
			btn = menu.BtnHSIEncoder
		}
		p.out.SendButton(btn, int(in.Button))
	}

	if in.Button == logic.ButtonClicked && p.menu != nil {
		if p.menu.Active() {
			p.menu.Press()
		} else if !p.brightnessOpen {
			p.menu.Open()
		}
	}

	if in.Power == logic.ButtonClicked {
		if p.brightnessOpen {
			p.settings.Brightness = p.power.Brightness()
			p.saveSettings()
		}
		p.brightnessOpen = !p.brightnessOpen
	}

	if in.Delta != 0 {
		switch {
		case p.brightnessOpen:
			p.backlight = p.power.SetBrightness(p.power.Brightness() + in.Delta)
		case p.menu != nil && p.menu.Active():
			p.menu.Turn(in.Delta)
		case p.settings.Device == settings.HSI:
			menu.Bump(p.out, menu.EncHeading, in.Delta)
		default:
			menu.Bump(p.out, menu.EncKohls, in.Delta)
		}
	}
}

func (p *Panel) apply(tr *logic.Transition) {
	if tr == nil {
		return
	}
	log.Printf("panel: power %s -> %s", tr.From, tr.To)
	if tr.SetBacklight {
		p.backlight = tr.Backlight
	}
	if tr.Redraw {
		p.redraw = true
	}
	if tr.To == logic.PowerOff {
		p.brightnessOpen = false
		if p.menu != nil {
			p.menu.Close()
		}
	}
}

func (p *Panel) saveSettings() {
	if err := settings.Save(p.kv, p.settings); err != nil {
		log.Printf("panel: %v", err)
	}
}

// source adapts the flight state for the menu items.
type source struct {
	st *telemetry.State
}

func (s source) HeadingBug() int      { return s.st.HeadingBug }
func (s source) GroundTrack() float64 { return s.st.GroundTrack }
func (s source) TargetAltitude() int  { return s.st.TargetAltitude }
func (s source) NavGPS() bool         { return s.st.NavGPS() }
func (s source) OBSActive() bool      { return s.st.OBSActive }
func (s source) OBSCourse() float64   { return s.st.OBSCourse }
func (s source) CDICourse() float64   { return s.st.CDICourse.Value() }
