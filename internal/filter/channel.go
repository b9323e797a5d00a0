package filter

import "math"

// Channel is one telemetry quantity: the raw value as last received and the
// displayed value that follows it frame by frame.
type Channel struct {
	Kind   Kind
	Params Params

	raw       float64
	displayed float64
}

// NewChannel returns a channel at zero.
func NewChannel(kind Kind, p Params) *Channel {
	return &Channel{Kind: kind, Params: p}
}

// Set records a new raw value. NaN and infinities are dropped.
func (c *Channel) Set(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	c.raw = v
}

// Step advances the displayed value one frame and returns it.
func (c *Channel) Step() float64 {
	c.displayed = Apply(c.Kind, c.raw, c.displayed, c.Params)
	return c.displayed
}

// Raw returns the last received value.
func (c *Channel) Raw() float64 { return c.raw }

// Value returns the displayed value.
func (c *Channel) Value() float64 { return c.displayed }

// Reset puts raw and displayed at v, skipping the approach.
func (c *Channel) Reset(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	c.raw = v
	c.displayed = v
}

// IntChannel is Channel for whole-number quantities such as vertical speed.
type IntChannel struct {
	Params Params

	raw       int
	displayed int
}

// NewIntChannel returns an integer channel at zero.
func NewIntChannel(p Params) *IntChannel {
	return &IntChannel{Params: p}
}

// Set records a new raw value.
func (c *IntChannel) Set(v int) { c.raw = v }

// Step advances the displayed value one frame and returns it.
func (c *IntChannel) Step() int {
	c.displayed = Int(c.raw, c.displayed, c.Params)
	return c.displayed
}

// Raw returns the last received value.
func (c *IntChannel) Raw() int { return c.raw }

// Value returns the displayed value.
func (c *IntChannel) Value() int { return c.displayed }

// Reset puts raw and displayed at v.
func (c *IntChannel) Reset(v int) {
	c.raw = v
	c.displayed = v
}
