package logic

import "time"

// Power lifecycle defaults.
const (
	DefaultShutdownTimeout = 45 * time.Second
	DefaultBatteryLife     = 3 * time.Hour
)

// Power tracks the display power lifecycle. It is owned by the frame loop.
type Power struct {
	shutdownTimeout time.Duration
	batteryLife     time.Duration

	control    PowerControl
	brightness int
	state      PowerState

	shutdownStart time.Time
	batteryStart  time.Time
}

// NewPower creates a Power in PowerInvalid. brightness is a percentage.
func NewPower(control PowerControl, brightness int) *Power {
	return &Power{
		shutdownTimeout: DefaultShutdownTimeout,
		batteryLife:     DefaultBatteryLife,
		control:         control,
		brightness:      clampPercent(brightness),
		state:           PowerInvalid,
	}
}

// State returns the current state.
func (p *Power) State() PowerState { return p.state }

// Control returns the power-control mode.
func (p *Power) Control() PowerControl { return p.control }

// SetControl changes the power-control mode. Unknown modes are ignored.
func (p *Power) SetControl(c PowerControl) {
	if c < Manual || c > AlwaysOn {
		return
	}
	p.control = c
}

// Brightness returns the brightness percentage.
func (p *Power) Brightness() int { return p.brightness }

// SetBrightness stores a brightness percentage (clamped to 1..100) and
// returns the matching backlight level.
func (p *Power) SetBrightness(pct int) int {
	p.brightness = clampPercent(pct)
	return Gamma(p.brightness)
}

// Set moves to ps. It returns nil when nothing changed. In AlwaysOn mode a
// request for PowerOff becomes PowerOn.
func (p *Power) Set(ps PowerState, now time.Time) *Transition {
	if p.control == AlwaysOn && ps == PowerOff {
		ps = PowerOn
	}
	if ps == p.state {
		return nil
	}

	tr := &Transition{At: now, From: p.state, To: ps}
	switch ps {
	case PowerOff:
		tr.SetBacklight = true
		tr.Backlight = 0
	case PowerOn:
		tr.SetBacklight = true
		tr.Backlight = Gamma(p.brightness)
		tr.Redraw = true
	case ShuttingDown:
		p.shutdownStart = now
	case BatteryPowered:
		p.batteryStart = now
	}
	p.state = ps
	return tr
}

// Tick applies the timed transitions: the shutdown timeout and battery
// exhaustion.
func (p *Power) Tick(now time.Time) *Transition {
	switch p.state {
	case ShuttingDown:
		if now.Sub(p.shutdownStart) >= p.shutdownTimeout {
			return p.Set(PowerOff, now)
		}
	case BatteryPowered:
		if p.BatteryPercent(now) <= 0 {
			return p.Set(PowerOff, now)
		}
	}
	return nil
}

// HandleInput applies user interaction to the lifecycle. active is true when
// the encoder or either button reported anything; power is the extra
// (power) button event. consumed is true when the input must not reach the
// menus.
func (p *Power) HandleInput(active bool, power ButtonEvent, now time.Time) (consumed bool, tr *Transition) {
	if !active {
		return false, nil
	}
	switch p.state {
	case ShuttingDown:
		if power.Held() {
			return true, p.Set(PowerOn, now)
		}
		return true, p.Set(BatteryPowered, now)
	case PowerOff:
		if power != ButtonIdle {
			return true, p.Set(PowerOn, now)
		}
		return true, nil
	}
	if power == ButtonLongPressed {
		return true, p.Set(ShuttingDown, now)
	}
	return false, nil
}

// ShutdownRemaining returns the time left before a shutdown completes.
func (p *Power) ShutdownRemaining(now time.Time) time.Duration {
	if p.state != ShuttingDown {
		return 0
	}
	left := p.shutdownTimeout - now.Sub(p.shutdownStart)
	if left < 0 {
		return 0
	}
	return left
}

// BatteryPercent returns the estimated remaining battery charge. It is 100
// unless running on battery.
func (p *Power) BatteryPercent(now time.Time) int {
	if p.state != BatteryPowered {
		return 100
	}
	life := int64(p.batteryLife / time.Second)
	elapsed := int64(now.Sub(p.batteryStart) / time.Second)
	pct := 100 * (life - elapsed) / life
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// BatteryBars returns how many of the four battery bars to light.
func BatteryBars(pct int) int {
	switch {
	case pct > 85:
		return 4
	case pct > 70:
		return 3
	case pct > 45:
		return 2
	case pct > 25:
		return 1
	default:
		return 0
	}
}

// Gamma converts a brightness percentage to a backlight level in 40..255.
func Gamma(pct int) int {
	n := float64(clampPercent(pct)) / 100
	return int(40 + (n*n*0.75+n*0.25)*215)
}

func clampPercent(pct int) int {
	if pct < 1 {
		return 1
	}
	if pct > 100 {
		return 100
	}
	return pct
}
