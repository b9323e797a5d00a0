package panel

import (
	"math"
	"strconv"
	"time"

	"github.com/sweeney/flight-panel/internal/attitude"
	"github.com/sweeney/flight-panel/internal/filter"
	"github.com/sweeney/flight-panel/internal/logic"
	"github.com/sweeney/flight-panel/internal/menu"
	"github.com/sweeney/flight-panel/internal/settings"
	"github.com/sweeney/flight-panel/internal/tape"
	"github.com/sweeney/flight-panel/internal/telemetry"
)

// NoTarget is the altitude target readout when no target is set.
const NoTarget = "- - - -"

func (p *Panel) compose(now time.Time) Frame {
	st := p.state
	f := Frame{
		Device:    p.settings.Device,
		Power:     p.power.State(),
		Backlight: p.backlight,
		Redraw:    p.redraw,
		Stale:     now.Sub(p.lastTelemetry) > StaleAfter,
		OAT:       st.OAT,
	}
	if p.menu != nil {
		f.Menu = p.menu.View()
	}
	if p.brightnessOpen {
		b := p.power.Brightness()
		f.Brightness = &b
	}
	switch f.Power {
	case logic.ShuttingDown:
		f.Shutdown = &ShutdownView{Seconds: int(math.Ceil(p.power.ShutdownRemaining(now).Seconds()))}
	case logic.BatteryPowered:
		pct := p.power.BatteryPercent(now)
		f.Battery = &BatteryView{Percent: pct, Bars: logic.BatteryBars(pct)}
	}

	switch p.settings.Device {
	case settings.PFD:
		p.composePFD(&f, now)
	case settings.HSI:
		p.composeHSI(&f)
	default:
		p.composeISIS(&f)
	}
	return f
}

func (p *Panel) composeAttitude(f *Frame) {
	st := p.state
	cfg := attitude.DefaultConfig()
	a := attitude.Project(st.Pitch.Value(), st.Bank.Value(), cfg)
	f.Attitude = &a
	f.Ball = st.Ball.Value()
}

func (p *Panel) composePFD(f *Frame, now time.Time) {
	st := p.state
	p.composeAttitude(f)
	cfg := attitude.DefaultConfig()
	if st.FDActive {
		cue := attitude.FlightDirector(st.Pitch.Value(), st.Bank.Value(), st.FDPitch, st.FDBank, cfg)
		f.FlightDirector = &cue
	}
	if deg, ok := attitude.StandardRateBank(st.TrueAirspeed); ok {
		f.StandardRate = deg
	}
	f.TurnRate = st.TurnRate

	f.Speed = p.speedView()
	f.Speed.Markers = p.vSpeedMarkers(st.Airspeed.Value())
	f.Speed.Arcs = p.arcs(st.Airspeed.Value())
	if st.APSpeedBug > 0 {
		m := clampedMarker(p.speedTape, strconv.Itoa(st.APSpeedBug), float64(st.APSpeedBug), st.Airspeed.Value(), Cyan)
		f.Speed.Bug = &m
	}

	f.Altitude = p.altitudeView()
	f.Altitude.Target = st.TargetAltitude
	f.Altitude.TargetLabel = NoTarget
	if st.TargetAltitude != 0 {
		f.Altitude.TargetLabel = strconv.Itoa(st.TargetAltitude)
		m := clampedMarker(p.altTape, f.Altitude.TargetLabel, float64(st.TargetAltitude), st.Altitude.Value(), Cyan)
		f.Altitude.TargetBug = &m
	}
	f.Altitude.AlertState = p.alert.State()
	f.Altitude.AlertColor = p.alert.Color(now)

	heading := st.Heading.Value()
	out, _ := p.headingTape.Update(heading)
	f.Heading = &HeadingView{
		Tape:    out,
		Heading: heading,
		Readout: tape.HeadingReadout(heading),
		Bug:     clampedMarker(p.headingTape, "", float64(st.HeadingBug), heading, Cyan),
		Track:   clampedMarker(p.headingTape, "", st.GroundTrack, heading, Magenta),
	}
	if st.DesiredTrackValid {
		m := clampedMarker(p.headingTape, "", st.DesiredTrack, heading, Magenta)
		f.Heading.Desired = &m
	}

	vs := st.VerticalSpeed.Value()
	f.VerticalSpeed = &VerticalSpeedView{
		FeetPerMinute: vs,
		Offset:        -float64(vs) * tape.VerticalSpeedScale,
	}
	if st.APVerticalMode == 2 {
		f.VerticalSpeed.Bug = &Marker{
			Label: strconv.Itoa(st.APVSBug),
			Pos:   -float64(st.APVSBug) * tape.VerticalSpeedScale,
			Color: Cyan,
		}
	}

	f.Nav = p.navView()
	f.Nav.Course = st.NavCourse
	if st.NavGPS() {
		f.Nav.Course = st.DesiredTrack
	}
	f.Autopilot = p.annunciator()
}

func (p *Panel) composeHSI(f *Frame) {
	st := p.state
	heading := st.Heading.Value()
	out, _ := p.headingTape.Update(heading)
	f.Heading = &HeadingView{
		Tape:    out,
		Heading: heading,
		Readout: tape.HeadingReadout(heading),
		Bug:     Marker{Pos: relative(float64(st.HeadingBug), heading), Color: Cyan},
		Track:   Marker{Pos: relative(st.GroundTrack, heading), Color: Magenta},
	}
	if st.DesiredTrackValid {
		f.Heading.Desired = &Marker{Pos: relative(st.DesiredTrack, heading), Color: Magenta}
	}

	f.Nav = p.navView()
	f.Nav.Course = st.CDICourse.Value()

	hidden := f.Menu.Active && f.Menu.State == menu.Browsing
	f.Bearings = []BearingView{
		p.bearingView(p.settings.Bearing1, p.bearing1.Value(), heading, hidden),
		p.bearingView(p.settings.Bearing2, p.bearing2.Value(), heading, hidden),
	}
}

func (p *Panel) composeISIS(f *Frame) {
	st := p.state
	p.composeAttitude(f)
	f.Speed = p.speedView()
	f.Speed.Mach = st.Mach
	f.Altitude = p.altitudeView()
	f.Altitude.TargetLabel = NoTarget
}

func (p *Panel) speedView() *SpeedView {
	st := p.state
	speed := st.Airspeed.Value()
	out, _ := p.speedTape.Update(speed)
	v := &SpeedView{
		Tape:        out,
		TAS:         int(math.Round(st.TrueAirspeed)),
		GroundSpeed: st.GroundSpeed,
	}
	if !out.Readout.Dashed && p.trend.Visible() {
		v.Trend = p.trend.Value()
		v.TrendVisible = true
		v.TrendPos = clampedMarker(p.speedTape, "", speed+v.Trend, speed, White).Pos
	}
	return v
}

func (p *Panel) altitudeView() *AltitudeView {
	st := p.state
	out, _ := p.altTape.Update(st.Altitude.Value())
	return &AltitudeView{
		Tape:        out,
		Kohlsman:    st.Kohlsman,
		PressureMB:  st.PressureMB,
		StdPressure: st.StdPressure,
	}
}

func (p *Panel) navView() *NavView {
	st := p.state
	v := &NavView{
		GPS:            st.NavGPS(),
		Deviation:      st.CDIOffset.Value(),
		DeviationOK:    st.CDIValid,
		ToFrom:         st.ToFrom,
		GlideSlope:     st.GlideSlope.Value(),
		GlideSlopeOK:   st.GlideSlopeValid,
		ScaleLabel:     st.CDIScaleText(),
		Approach:       st.ApproachLabel(),
		DistNext:       st.DistNext,
		ETE:            st.ETE,
		WindDir:        st.WindDir.Value(),
		WindSpeed:      st.WindSpeed.Value(),
		DesiredTrack:   st.DesiredTrack,
		DesiredTrackOK: st.DesiredTrackValid,
	}
	v.Source = "GPS"
	if !v.GPS {
		v.Source = st.NavCDILabelText()
	}
	return v
}

func (p *Panel) annunciator() *Annunciator {
	st := p.state
	a := &Annunciator{
		Active:        st.APActive,
		LateralMode:   st.LateralModeLabel(),
		VerticalMode:  st.VerticalModeLabel(),
		LateralArmed:  st.LateralArmedLabel(),
		VerticalArmed: st.VerticalArmedLabel(),
		YawDamper:     st.YawDamper,
		AltCaptured:   st.APAltCaptured,
	}
	switch st.APVerticalMode {
	case 1:
		a.Target = strconv.Itoa(st.TargetAltitude) + "ft"
	case 2:
		a.Target = strconv.Itoa(st.APVSBug) + "fpm"
	case 4:
		a.Target = strconv.Itoa(st.APSpeedBug) + "kts"
	}
	return a
}

// bearingView describes one bearing pointer. VOR stations, GPS and a valid
// ADF draw a needle; other sources only show their label.
func (p *Panel) bearingView(source int, angle, heading float64, hidden bool) BearingView {
	st := p.state
	if source == settings.BearingOff {
		return BearingView{}
	}
	navType := 0
	switch source {
	case settings.BearingVLOC1:
		navType = st.Nav1Type
	case settings.BearingVLOC2:
		navType = st.Nav2Type
	}
	label := telemetry.NavTypeLabel(navType)
	switch source {
	case settings.BearingGPS:
		label = "GPS"
	case settings.BearingADF:
		label = "ADF"
	}
	visible := navType == 2 || source == settings.BearingGPS || (source == settings.BearingADF && st.ADFValid)
	return BearingView{
		Label:   label,
		Angle:   relative(angle, heading),
		Visible: visible && !hidden,
	}
}

// vSpeedMarkers returns the V-speed references that fall on the visible tape.
func (p *Panel) vSpeedMarkers(speed float64) []Marker {
	s := p.settings
	refs := []struct {
		label string
		v     int
	}{
		{"R", s.Vr}, {"X", s.Vx}, {"Y", s.Vy}, {"G", s.Vg}, {"A", s.Va},
	}
	var out []Marker
	for _, r := range refs {
		if r.v <= 0 {
			continue
		}
		m := clampedMarker(p.speedTape, r.label, float64(r.v), speed, Cyan)
		if !m.Clamped {
			out = append(out, m)
		}
	}
	return out
}

// arcs returns the colored speed bands clipped to the visible tape.
func (p *Panel) arcs(speed float64) []Arc {
	s := p.settings
	top := speed + p.speedTape.Config().Scale.Span
	bands := []struct {
		lo, hi float64
		c      Color
	}{
		{0, float64(s.Vs0), Red},
		{float64(s.Vs0), float64(s.Vfe), White},
		{float64(s.Vs1), float64(s.Vno), Green},
		{float64(s.Vno), float64(s.Vne), Yellow},
		{float64(s.Vne), math.Max(top, float64(s.Vne)), Red},
	}
	lo, hi := visible(p.speedTape)
	var out []Arc
	for _, b := range bands {
		if b.hi <= b.lo {
			continue
		}
		from := tape.Clamp(p.speedTape.Position(b.lo, speed), lo, hi)
		to := tape.Clamp(p.speedTape.Position(b.hi, speed), lo, hi)
		if from == to {
			continue
		}
		out = append(out, Arc{From: from, To: to, Color: b.c})
	}
	return out
}

func visible(t *tape.Tape) (lo, hi float64) {
	s := t.Config().Scale
	half := s.Span * s.PixelsPerUnit
	return s.Reference - half, s.Reference + half
}

func clampedMarker(t *tape.Tape, label string, value, current float64, c Color) Marker {
	lo, hi := visible(t)
	pos := t.Position(value, current)
	cl := tape.Clamp(pos, lo, hi)
	return Marker{Label: label, Pos: cl, Color: c, Clamped: cl != pos}
}

// relative returns angle measured from heading, in (-180, 180].
func relative(angle, heading float64) float64 {
	return filter.WrapSigned(angle - heading)
}
