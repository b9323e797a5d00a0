package filter

import (
	"math"
	"time"
)

// Trend estimates where a speed will be a few seconds ahead. Speed is
// smoothed first, then the rate of change of the smoothed speed is smoothed
// again.
type Trend struct {
	InputTau time.Duration // smoothing of the raw speed
	TrendTau time.Duration // smoothing of the acceleration
	Horizon  time.Duration // look-ahead applied to the acceleration
	MaxGap   time.Duration // samples further apart than this restart the estimate

	initialized bool
	last        time.Time
	smoothed    float64
	prev        float64
	accel       float64
}

// NewTrend returns a Trend with a 1 s input filter, 2 s trend filter and
// 6 s look-ahead.
func NewTrend() *Trend {
	return &Trend{
		InputTau: time.Second,
		TrendTau: 2 * time.Second,
		Horizon:  6 * time.Second,
		MaxGap:   time.Second,
	}
}

// Update feeds one speed sample taken at now.
func (t *Trend) Update(speed float64, now time.Time) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return
	}
	if !t.initialized || now.Sub(t.last) > t.MaxGap {
		t.smoothed = speed
		t.prev = speed
		t.accel = 0
		t.last = now
		t.initialized = true
		return
	}

	dt := now.Sub(t.last).Seconds()
	if dt <= 0 {
		return
	}

	a := 1 - math.Exp(-dt/t.InputTau.Seconds())
	t.smoothed = a*speed + (1-a)*t.smoothed

	instant := (t.smoothed - t.prev) / dt
	b := 1 - math.Exp(-dt/t.TrendTau.Seconds())
	t.accel = b*instant + (1-b)*t.accel

	t.prev = t.smoothed
	t.last = now
}

// Value returns the predicted change in speed over the look-ahead.
func (t *Trend) Value() float64 {
	return t.accel * t.Horizon.Seconds()
}

// Visible reports whether the trend is large enough to draw.
func (t *Trend) Visible() bool {
	return math.Abs(t.Value()) >= 1
}

// Reset discards the estimate.
func (t *Trend) Reset() {
	t.initialized = false
	t.accel = 0
	t.smoothed = 0
	t.prev = 0
}
