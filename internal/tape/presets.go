package tape

import "math"

// Speed is the primary airspeed tape: a units roller with the tens and above
// as one group, 7.02 px/kt, labels every 10 kt.
func Speed() Config {
	return Config{
		Roller: Roller{Step: 1, Modulo: 10, Digits: 1, Height: 37, Baseline: 47},
		Groups: []Group{
			{Place: 10, Height: 37, Baseline: 47},
		},
		Scale: Scale{
			Reference:     200,
			PixelsPerUnit: 7.02,
			Direction:     1,
			Minor:         5,
			Major:         10,
			Span:          30,
			Bounded:       true,
		},
		Alive: 20,
	}
}

// Altitude is the primary altitude tape: a 20 ft roller with hundreds,
// thousands and ten-thousands groups, 1.21 px/ft, labels every 100 ft.
func Altitude() Config {
	return Config{
		Roller: Roller{Step: 20, Modulo: 100, Digits: 2, Height: 36, Baseline: 54},
		Groups: []Group{
			{Place: 100, Digits: 1, Height: 40, Baseline: 54},
			{Place: 1000, Digits: 1, Height: 40, Baseline: 54},
			{Place: 10000, Height: 40, Baseline: 54},
		},
		Scale: Scale{
			Reference:     248,
			PixelsPerUnit: 1.21,
			Direction:     1,
			Minor:         20,
			Major:         100,
			Span:          250,
		},
	}
}

// StandbyAltitude is the standby instrument's altitude tape, labeled every
// 500 ft.
func StandbyAltitude() Config {
	c := Altitude()
	c.Scale.Major = 500
	c.Scale.Minor = 100
	c.Scale.PixelsPerUnit = 0.5
	c.Scale.Span = 600
	return c
}

// StandbySpeed is the standby instrument's airspeed tape.
func StandbySpeed() Config {
	c := Speed()
	c.Scale.PixelsPerUnit = 4
	c.Scale.Span = 50
	return c
}

// Heading is the horizontal heading tape, 6.8 px/deg, labels every 10
// degrees. Larger headings sit to the right.
func Heading() Config {
	return Config{
		Scale: Scale{
			Reference:     240,
			PixelsPerUnit: 6.8,
			Direction:     -1,
			Minor:         5,
			Major:         10,
			Span:          40,
			Wrap:          360,
		},
	}
}

// HeadingReadout rounds a heading for display in 1..360.
func HeadingReadout(h float64) int {
	return wrapLabel(int(math.Round(h)), 360)
}

// VerticalSpeedScale is pixels per foot-per-minute of the vertical speed pointer.
const VerticalSpeedScale = 0.131
