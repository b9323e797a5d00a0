// Package tape computes scrolling tape positions and rolling digit readouts
// for the speed, altitude and heading tapes.
//
// A readout is split into a roller (the lowest, continuously sliding label,
// e.g. altitude in steps of 20) and higher digit groups that only move while
// the roller is in its terminal window and every digit between them is at 9.
// All positions are along the tape axis. Increasing the value moves content
// toward +Direction.
package tape

import "math"

// Roller is the lowest readout group. It always slides with the value.
type Roller struct {
	Step     float64 // value span between adjacent labels
	Modulo   int     // labels are shown modulo this
	Digits   int     // zero padded width of a label
	Height   float64 // pixels between adjacent labels
	Baseline float64 // position of the current label at phase 0
}

// Group is a higher digit group above the roller.
type Group struct {
	Place    int     // 100 for hundreds and so on
	Digits   int     // digits shown; 0 shows everything from Place upward
	Height   float64 // pixels the group slides when it rolls
	Baseline float64
}

// Scale positions the background ticks and markers.
type Scale struct {
	Reference     float64 // position of the current value
	PixelsPerUnit float64
	Direction     float64 // +1 or -1
	Minor         float64 // tick spacing
	Major         float64 // labeled tick spacing, a multiple of Minor
	Span          float64 // ticks are emitted within this distance of the value
	Wrap          float64 // non-zero for circular scales; labels fall in (0, Wrap]
	Bounded       bool    // no ticks below Min
	Min           float64
}

// Config describes one tape.
type Config struct {
	Roller Roller
	Groups []Group
	Scale  Scale
	// Alive is the value below which the readout is replaced by a placeholder.
	Alive float64
}

// Digit is one label of a readout group.
type Digit struct {
	Place int // 0 for the roller
	Value int
	Width int // zero padded width, 0 for none
	Pos   float64
}

// Readout is the rolling digit display.
type Readout struct {
	Value    float64
	Negative bool
	Dashed   bool
	Rolling  bool // the roller is in its terminal window
	Digits   []Digit
}

// Tick is one background scale mark.
type Tick struct {
	Pos   float64
	Value float64
	Major bool
	Label int // valid when Major
}

// Output is everything the renderer needs for one tape.
type Output struct {
	Readout Readout
	Ticks   []Tick
}

// Phase returns the fractional progress of value through its band of width w,
// in [0, 1).
func Phase(value, w float64) float64 {
	m := math.Mod(value, w)
	if m < 0 {
		m += w
	}
	if m >= w {
		m = 0
	}
	return m / w
}

// InWindow reports whether value lies in the last window units of a band of
// width band.
func InWindow(value, band, window float64) bool {
	m := math.Mod(value, band)
	if m < 0 {
		m += band
	}
	return m >= band-window
}

// Tape holds a tape's configuration and the value it last drew.
type Tape struct {
	cfg   Config
	last  float64
	drawn bool
}

// New returns a tape for cfg.
func New(cfg Config) *Tape {
	return &Tape{cfg: cfg}
}

// Config returns the tape's configuration.
func (t *Tape) Config() Config { return t.cfg }

// Update computes the output for value. changed is false when value equals
// the value of the previous call.
func (t *Tape) Update(value float64) (out Output, changed bool) {
	changed = !t.drawn || value != t.last
	t.last = value
	t.drawn = true
	return Compute(t.cfg, value), changed
}

// Position maps a scale value to a position on the tape axis for the current
// value. Circular scales take the short way round.
func (t *Tape) Position(target, current float64) float64 {
	return position(t.cfg.Scale, target, current)
}

// Clamp limits p to [lo, hi].
func Clamp(p, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, p))
}

func position(s Scale, target, current float64) float64 {
	d := current - target
	if s.Wrap > 0 {
		d = math.Mod(d, s.Wrap)
		if d > s.Wrap/2 {
			d -= s.Wrap
		} else if d <= -s.Wrap/2 {
			d += s.Wrap
		}
	}
	return s.Reference + s.Direction*d*s.PixelsPerUnit
}

// Compute is the stateless core of Update.
func Compute(cfg Config, value float64) Output {
	return Output{
		Readout: readout(cfg, value),
		Ticks:   ticks(cfg.Scale, value),
	}
}

func readout(cfg Config, value float64) Readout {
	r := Readout{Value: value}
	if cfg.Alive > 0 && value < cfg.Alive {
		r.Dashed = true
		return r
	}
	abs := value
	if abs < 0 {
		abs = -abs
		r.Negative = true
	}

	rl := cfg.Roller
	if rl.Step <= 0 {
		return r
	}
	dir := cfg.Scale.Direction

	// The roller follows the signed value so it moves with the ticks on both
	// sides of zero; labels show magnitudes.
	slide := Phase(value, rl.Step) * rl.Height
	base := int(math.Floor(value/rl.Step)) * int(rl.Step)
	step := int(rl.Step)
	for _, k := range []int{1, 0, -1} {
		r.Digits = append(r.Digits, Digit{
			Place: 0,
			Value: mod(iabs(base+k*step), rl.Modulo),
			Width: rl.Digits,
			Pos:   rl.Baseline + dir*(slide-float64(k)*rl.Height),
		})
	}

	// Higher groups roll as the magnitude grows, which below zero is the
	// decreasing direction.
	gdir := dir
	if r.Negative {
		gdir = -dir
	}
	r.Rolling = InWindow(abs, float64(rl.Modulo), rl.Step)
	for _, g := range cfg.Groups {
		r.Digits = append(r.Digits, groupDigits(g, rl, abs, r.Rolling, Phase(abs, rl.Step), gdir)...)
	}
	return r
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// rolls reports whether the group at place should animate: the roller is in
// its terminal window and every digit from the roller's modulo up to place is 9.
func rolls(place int, rl Roller, abs float64, rollerWindow bool) bool {
	if !rollerWindow {
		return false
	}
	whole := int(math.Floor(abs))
	for p := rl.Modulo; p < place; p *= 10 {
		if (whole/p)%10 != 9 {
			return false
		}
	}
	return true
}

func groupDigits(g Group, rl Roller, abs float64, rollerWindow bool, f, dir float64) []Digit {
	whole := int(math.Floor(abs))
	cur := whole / g.Place
	next := cur + 1
	width := 0
	if g.Digits > 0 {
		lim := pow10(g.Digits)
		cur %= lim
		next %= lim
		width = g.Digits
	}

	rolling := rolls(g.Place, rl, abs, rollerWindow)
	if !rolling {
		if whole/g.Place == 0 {
			return nil
		}
		return []Digit{{Place: g.Place, Value: cur, Width: width, Pos: g.Baseline}}
	}

	slide := f * g.Height
	var out []Digit
	if whole/g.Place > 0 {
		out = append(out, Digit{Place: g.Place, Value: cur, Width: width, Pos: g.Baseline + dir*slide})
	}
	out = append(out, Digit{Place: g.Place, Value: next, Width: width, Pos: g.Baseline + dir*(slide-g.Height)})
	return out
}

func ticks(s Scale, value float64) []Tick {
	if s.Minor <= 0 || s.PixelsPerUnit == 0 {
		return nil
	}
	lo := math.Ceil((value - s.Span) / s.Minor)
	hi := math.Floor((value + s.Span) / s.Minor)
	majorEvery := int(math.Round(s.Major / s.Minor))

	var out []Tick
	for i := lo; i <= hi; i++ {
		v := i * s.Minor
		if s.Bounded && v < s.Min {
			continue
		}
		t := Tick{
			Pos:   s.Reference + s.Direction*(value-v)*s.PixelsPerUnit,
			Value: v,
		}
		if majorEvery > 0 && int(i)%majorEvery == 0 {
			t.Major = true
			t.Label = int(math.Round(v))
			if s.Wrap > 0 {
				t.Label = wrapLabel(t.Label, int(s.Wrap))
			}
		}
		out = append(out, t)
	}
	return out
}

// wrapLabel maps v into (0, wrap], so north reads 360.
func wrapLabel(v, wrap int) int {
	return ((v-1)%wrap+wrap)%wrap + 1
}

func mod(v, m int) int {
	return (v%m + m) % m
}

func pow10(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
