// Package attitude projects pitch and bank onto the attitude indicator.
//
// Project is a pure function: filtered pitch and bank in, screen-space
// horizon, pitch-ladder rungs and labels out. Screen Y grows downward and the
// pivot is the configured center. Nothing is remembered between calls.
package attitude

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// minCos keeps the horizon math finite near +/-90 degrees of bank.
const minCos = 0.01

// Config describes the attitude area.
type Config struct {
	Center     r2.Vec  // rotation pivot
	PitchScale float64 // pixels per degree of pitch
	Width      float64
	Height     float64
	// Cull drops rungs whose un-rotated vertical offset exceeds this many pixels.
	Cull float64
	// FadeBeyond switches rungs further than this from the pivot to the faded color.
	FadeBeyond float64
}

// DefaultConfig matches the 480x400 attitude area of the primary display.
func DefaultConfig() Config {
	return Config{
		Center:     r2.Vec{X: 240, Y: 200},
		PitchScale: 8,
		Width:      480,
		Height:     400,
		Cull:       300,
		FadeBeyond: 81,
	}
}

// RungWidth classifies ladder rungs.
type RungWidth int

const (
	Narrow RungWidth = iota // 2.5 degree steps
	Medium                  // 5 degree steps
	Wide                    // 10 degree steps, labeled
)

// Pixels returns the rung length.
func (w RungWidth) Pixels() float64 {
	switch w {
	case Wide:
		return 80
	case Medium:
		return 60
	default:
		return 40
	}
}

// Color is a rung color hint for the renderer.
type Color int

const (
	White Color = iota
	FadedSky
	FadedGround
	Red
)

// Segment is a line in screen space.
type Segment struct {
	A, B  r2.Vec
	Color Color
}

// Slope returns dy/dx of the segment.
func (s Segment) Slope() float64 {
	return (s.B.Y - s.A.Y) / (s.B.X - s.A.X)
}

// Rung is one pitch-ladder line.
type Rung struct {
	Degrees float64
	Width   RungWidth
	Segment
}

// Label is a pitch value drawn beside a wide rung.
type Label struct {
	Pos      r2.Vec
	Value    int     // absolute degrees
	Rotation float64 // degrees, clockwise
}

// Chevron is a pull-out arrow drawn at extreme pitch.
type Chevron struct {
	Degrees float64
	Points  [3]r2.Vec // left arm, tip, right arm
}

// Frame is the projected attitude for one frame.
type Frame struct {
	Pitch         float64
	Bank          float64
	Inverted      bool
	HorizonOffset float64 // pixels, at the center column
	Horizon       Segment
	Rungs         []Rung
	Labels        []Label
	Chevrons      []Chevron

	center     r2.Vec
	scale      float64
	sin, cos   float64
	cosClamped float64
}

// HorizonY returns the horizon's screen Y at dx pixels right of center.
func (f Frame) HorizonY(dx float64) float64 {
	tan := f.sin / f.cosClamped
	return f.center.Y + f.HorizonOffset/f.cosClamped + dx*tan
}

// Rotate maps a point given relative to the pivot in the un-rotated frame
// into screen space.
func (f Frame) Rotate(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: f.center.X + p.X*f.cos - p.Y*f.sin,
		Y: f.center.Y + p.X*f.sin + p.Y*f.cos,
	}
}

// Offset returns the un-rotated vertical offset of a pitch value.
func (f Frame) Offset(deg float64) float64 {
	return (deg - f.Pitch) * f.scale
}

var ladder = buildLadder()

func buildLadder() []float64 {
	var out []float64
	for d := 2.5; d <= 20; d += 2.5 {
		out = append(out, d, -d)
	}
	for d := 25.0; d <= 85; d += 5 {
		out = append(out, d, -d)
	}
	return out
}

func widthOf(deg float64) RungWidth {
	a := math.Abs(deg)
	switch {
	case math.Mod(a, 10) == 0:
		return Wide
	case math.Mod(a, 5) == 0:
		return Medium
	default:
		return Narrow
	}
}

// Project computes the attitude frame for the given filtered pitch and bank
// in degrees.
func Project(pitch, bank float64, cfg Config) Frame {
	rad := bank * math.Pi / 180
	sin, cos := math.Sincos(rad)
	cc := cos
	if math.Abs(cc) < minCos {
		if cc < 0 {
			cc = -minCos
		} else {
			cc = minCos
		}
	}

	f := Frame{
		Pitch:      pitch,
		Bank:       bank,
		Inverted:   math.Abs(bank) > 90,
		center:     cfg.Center,
		scale:      cfg.PitchScale,
		sin:        sin,
		cos:        cos,
		cosClamped: cc,
	}
	if f.Inverted {
		f.HorizonOffset = pitch * cfg.PitchScale
	} else {
		f.HorizonOffset = -pitch * cfg.PitchScale
	}

	half := cfg.Width * 0.75
	f.Horizon = Segment{
		A: r2.Vec{X: cfg.Center.X - half, Y: f.HorizonY(-half)},
		B: r2.Vec{X: cfg.Center.X + half, Y: f.HorizonY(half)},
	}

	labelRotation := bank
	if f.Inverted {
		labelRotation += 180
	}

	for _, deg := range ladder {
		off := f.Offset(deg)
		if math.Abs(off) > cfg.Cull {
			continue
		}
		w := widthOf(deg)
		hw := w.Pixels() / 2
		color := White
		if math.Abs(off) > cfg.FadeBeyond {
			if deg > 0 {
				color = FadedSky
			} else {
				color = FadedGround
			}
		}
		f.Rungs = append(f.Rungs, Rung{
			Degrees: deg,
			Width:   w,
			Segment: Segment{
				A:     f.Rotate(r2.Vec{X: -hw, Y: off}),
				B:     f.Rotate(r2.Vec{X: hw, Y: off}),
				Color: color,
			},
		})
		if w != Wide {
			continue
		}
		v := int(math.Abs(deg))
		for _, side := range []float64{-1, 1} {
			f.Labels = append(f.Labels, Label{
				Pos:      f.Rotate(r2.Vec{X: side * (hw + 15), Y: off}),
				Value:    v,
				Rotation: labelRotation,
			})
		}
	}

	for d := 40.0; d <= 80; d += 10 {
		for _, sign := range []float64{1, -1} {
			deg := sign * d
			tip := f.Offset(deg)
			if math.Abs(tip) > cfg.Cull {
				continue
			}
			tail := f.Offset(deg + sign*10)
			f.Chevrons = append(f.Chevrons, Chevron{
				Degrees: deg,
				Points: [3]r2.Vec{
					f.Rotate(r2.Vec{X: -40, Y: tail}),
					f.Rotate(r2.Vec{X: 0, Y: tip}),
					f.Rotate(r2.Vec{X: 40, Y: tail}),
				},
			})
		}
	}

	return f
}

// Cue is the flight-director command bars.
type Cue struct {
	Pivot    r2.Vec
	Rotation float64 // degrees
}

// FlightDirector places the command bars relative to the aircraft symbol.
func FlightDirector(pitch, bank, fdPitch, fdBank float64, cfg Config) Cue {
	return Cue{
		Pivot:    r2.Vec{X: cfg.Center.X, Y: cfg.Center.Y + (fdPitch-pitch)*cfg.PitchScale},
		Rotation: bank - fdBank,
	}
}

// StandardRateBank returns the bank angle for a standard-rate turn at the
// given true airspeed. ok is false at speeds too low for it to matter.
func StandardRateBank(tas float64) (deg float64, ok bool) {
	if tas <= 45 {
		return 0, false
	}
	return tas/10 + 7, true
}
