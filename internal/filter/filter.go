// Package filter smooths raw telemetry into displayed values.
//
// Every function here is pure: (input, current, params) -> new current. A value
// moves toward its target by a fraction of the remaining difference each frame
// and snaps to the target once the difference is within the snap threshold, so
// it never overshoots.
package filter

import "math"

// Params are the per-channel smoothing constants.
type Params struct {
	Alpha float64 // fraction of the remaining difference applied per step, (0,1]
	Snap  float64 // differences at or below this are applied in full
}

// Kind selects how a channel's difference is measured.
type Kind int

const (
	Scalar        Kind = iota // plain number
	UnsignedAngle             // degrees in [0, 360)
	SignedAngle               // degrees in (-180, 180]
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case UnsignedAngle:
		return "unsigned-angle"
	case SignedAngle:
		return "signed-angle"
	default:
		return "unknown"
	}
}

// Float moves current toward input.
func Float(input, current float64, p Params) float64 {
	diff := input - current
	if math.Abs(diff) <= p.Snap {
		return input
	}
	return current + p.Alpha*diff
}

// Int moves current toward input in whole units. A step that truncates to
// zero while the difference is still above the snap threshold becomes a unit
// step, so the value cannot stall short of its target.
func Int(input, current int, p Params) int {
	diff := input - current
	if math.Abs(float64(diff)) <= p.Snap {
		return input
	}
	step := int(p.Alpha * float64(diff))
	if step == 0 {
		if diff > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	return current + step
}

// Unsigned smooths an angle on the 0-360 circle taking the short way round.
// The result is always in [0, 360).
func Unsigned(input, current float64, p Params) float64 {
	diff := WrapSigned(input - current)
	if math.Abs(diff) <= p.Snap {
		return WrapUnsigned(input)
	}
	return WrapUnsigned(current + p.Alpha*diff)
}

// Signed smooths an angle on the -180..180 circle taking the short way round.
// The result is always in (-180, 180].
func Signed(input, current float64, p Params) float64 {
	diff := WrapSigned(input - current)
	if math.Abs(diff) <= p.Snap {
		return WrapSigned(input)
	}
	return WrapSigned(current + p.Alpha*diff)
}

// Apply dispatches on kind.
func Apply(kind Kind, input, current float64, p Params) float64 {
	switch kind {
	case UnsignedAngle:
		return Unsigned(input, current, p)
	case SignedAngle:
		return Signed(input, current, p)
	default:
		return Float(input, current, p)
	}
}

// WrapUnsigned maps deg into [0, 360).
func WrapUnsigned(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// -1e-15 + 360 rounds to 360 in float64.
	if d >= 360 {
		d = 0
	}
	return d
}

// WrapSigned maps deg into (-180, 180].
func WrapSigned(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
