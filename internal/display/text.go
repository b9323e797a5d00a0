package display

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sweeney/flight-panel/internal/menu"
	"github.com/sweeney/flight-panel/internal/panel"
	"github.com/sweeney/flight-panel/internal/tape"
)

const ballTravel = 30 // pixels either side of center at full deflection

func itoa(n int) string { return strconv.Itoa(n) }

func speedText(r tape.Readout) string {
	if r.Dashed {
		return "---"
	}
	return itoa(int(math.Round(r.Value)))
}

func altitudeText(r tape.Readout) string {
	if r.Dashed {
		return "-----"
	}
	v := int(math.Round(math.Abs(r.Value)))
	if r.Negative {
		return "-" + itoa(v)
	}
	return itoa(v)
}

// headingText pads to three digits; north reads 360.
func headingText(deg int) string {
	deg %= 360
	if deg <= 0 {
		deg += 360
	}
	return fmt.Sprintf("%03d", deg)
}

func machText(m float64) string {
	return fmt.Sprintf("M %.3f", m)
}

func pressureText(v *panel.AltitudeView) string {
	switch {
	case v.StdPressure:
		return "STD"
	case v.PressureMB > 0:
		return itoa(v.PressureMB) + "MB"
	}
	return fmt.Sprintf("%.2fIN", v.Kohlsman)
}

func oatText(c int) string {
	return "OAT " + itoa(c) + "C"
}

func distanceText(nm float64) string {
	if nm <= 0 {
		return "--.-NM"
	}
	if nm >= 100 {
		return itoa(int(math.Round(nm))) + "NM"
	}
	return fmt.Sprintf("%.1fNM", nm)
}

// eteText renders seconds as H:MM past an hour and MM:SS below.
func eteText(sec int) string {
	if sec <= 0 {
		return "--:--"
	}
	if sec >= 3600 {
		return fmt.Sprintf("%d:%02d", sec/3600, sec%3600/60)
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

func windText(dir, speed float64) string {
	if speed < 1 {
		return "NO WIND"
	}
	return fmt.Sprintf("%s/%dKT", headingText(int(math.Round(dir))), int(math.Round(speed)))
}

func shutdownText(sec int) string {
	return fmt.Sprintf("SHUTDOWN IN %ds", sec)
}

// cardinal labels a compass card tick every 30 degrees.
func cardinal(deg int) string {
	switch deg {
	case 0:
		return "N"
	case 90:
		return "E"
	case 180:
		return "S"
	case 270:
		return "W"
	}
	return itoa(deg / 10)
}

// ballOffset maps the slip ball (-1..1) to pixels.
func ballOffset(ball float64) float64 {
	return math.Max(-1, math.Min(1, ball)) * ballTravel
}

func iconText(i menu.Icon) string {
	switch i {
	case menu.BackIcon:
		return "< "
	case menu.SetupIcon:
		return "* "
	case menu.HSIIcon, menu.PFDIcon:
		return "> "
	}
	return ""
}

// settingsWindow returns at most n rows around the highlighted one.
func settingsWindow(rows []menu.Row, n int) []menu.Row {
	if len(rows) <= n {
		return rows
	}
	sel := 0
	for i, r := range rows {
		if r.Highlighted {
			sel = i
			break
		}
	}
	start := max(0, min(sel-n/2, len(rows)-n))
	return rows[start : start+n]
}
