package logic

import (
	"math"
	"time"
)

// Altitude alerter thresholds and flash timing.
const (
	alertNear      = 1000.0
	alertClose     = 200.0
	alertCapture   = 100.0
	alertDeviation = 200.0

	FlashDuration = 5 * time.Second
	flashPeriod   = time.Second
	flashOn       = 800 * time.Millisecond
)

// AltAlert tracks the approach to and hold of a target altitude.
type AltAlert struct {
	target    int
	hasTarget bool

	state      AlertState
	active     bool
	start      time.Time
	flashColor AlertColor
}

// NewAltAlert returns an idle alerter.
func NewAltAlert() *AltAlert {
	return &AltAlert{state: AlertIdle, flashColor: ColorCyan}
}

// State returns the current state.
func (a *AltAlert) State() AlertState { return a.state }

// Target returns the target altitude.
func (a *AltAlert) Target() int { return a.target }

// SetTarget changes the target altitude. A different target resets the
// alerter to idle and cancels any flash.
func (a *AltAlert) SetTarget(target int) {
	if a.hasTarget && target == a.target {
		return
	}
	a.target = target
	a.hasTarget = true
	a.state = AlertIdle
	a.active = false
	a.flashColor = ColorCyan
}

// Update advances the alerter for the current altitude. It returns true when
// a flash starts.
func (a *AltAlert) Update(altitude float64, now time.Time) bool {
	if a.active && now.Sub(a.start) > FlashDuration {
		a.active = false
	}

	diff := math.Abs(altitude - float64(a.target))
	switch a.state {
	case AlertIdle:
		if diff <= alertNear {
			return a.enter(AlertWithin1000, ColorCyan, now)
		}
	case AlertWithin1000:
		if diff > alertNear {
			a.state = AlertIdle
		} else if diff <= alertClose {
			return a.enter(AlertWithin200, ColorCyan, now)
		}
	case AlertWithin200:
		if diff > alertClose {
			if diff > alertNear {
				a.state = AlertIdle
			} else {
				a.state = AlertWithin1000
			}
		} else if diff <= alertCapture {
			a.state = AlertCaptured
		}
	case AlertCaptured:
		if diff > alertDeviation {
			return a.enter(AlertDeviated, ColorYellow, now)
		}
	case AlertDeviated:
		if diff <= alertCapture {
			return a.enter(AlertCaptured, ColorCyan, now)
		} else if diff <= alertDeviation {
			return a.enter(AlertWithin200, ColorCyan, now)
		}
	}
	return false
}

func (a *AltAlert) enter(s AlertState, c AlertColor, now time.Time) bool {
	a.state = s
	a.active = true
	a.start = now
	a.flashColor = c
	return true
}

// Flashing reports whether a flash is in progress at now.
func (a *AltAlert) Flashing(now time.Time) bool {
	return a.active && now.Sub(a.start) <= FlashDuration
}

// Color returns the target readout color at now.
func (a *AltAlert) Color(now time.Time) AlertColor {
	if a.Flashing(now) {
		if now.Sub(a.start)%flashPeriod >= flashOn {
			return ColorBlank
		}
		return a.flashColor
	}
	if a.state == AlertDeviated {
		return ColorYellow
	}
	return ColorCyan
}
