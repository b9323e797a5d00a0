// Package telemetry holds the per-instrument flight state fed by the host.
//
// Values arrive as (id, value) pairs with string values. Smoothed quantities
// live in filter channels and advance once per frame through Step; the rest
// are plain fields.
package telemetry

import (
	"github.com/sweeney/flight-panel/internal/filter"
	"github.com/sweeney/flight-panel/internal/settings"
)

// Nav source values.
const (
	NavSourceNAV = 0
	NavSourceGPS = 1
)

// State is the flight state of one instrument. It is owned by the frame loop.
type State struct {
	Device settings.DeviceType

	// Common
	Heading           *filter.Channel
	HeadingBug        int
	ApproachType      int
	CDIOffset         *filter.Channel
	CDIValid          bool
	ToFrom            int
	GlideSlope        *filter.Channel
	GlideSlopeValid   bool
	GroundSpeed       int
	GroundTrack       float64
	NavSource         int
	DesiredTrack      float64
	DesiredTrackValid bool

	// HSI
	ADFBearing    float64
	ADFValid      bool
	CDICourse     *filter.Channel
	CDIScaleLabel int
	DistNext      float64
	GPSBearing    float64
	NavCDILabel   int
	Nav1Bearing   float64
	Nav1Type      int
	Nav2Bearing   float64
	Nav2Type      int
	OBSActive     bool
	OBSCourse     float64
	WindDir       *filter.Channel
	WindSpeed     *filter.Channel
	ETE           int

	// PFD and ISIS
	Airspeed        *filter.Channel
	APActive        bool
	APAltCaptured   bool
	TargetAltitude  int
	APLateralArmed  int
	APVerticalArmed int
	APLateralMode   int
	APSpeedBug      int
	APVerticalMode  int
	APVSBug         int
	YawDamper       bool
	Ball            *filter.Channel
	Bank            *filter.Channel
	FDActive        bool
	FDBank          float64
	FDPitch         float64
	Altitude        *filter.Channel
	Kohlsman        float64
	OAT             int
	Pitch           *filter.Channel
	TurnRate        float64
	VerticalSpeed   *filter.IntChannel
	NavCourse       float64
	DensityAltitude int
	TrueAirspeed    float64

	// ISIS
	PressureMB  int
	StdPressure bool
	Mach        float64
}

// NewState returns a State with the smoothing used by device.
func NewState(device settings.DeviceType) *State {
	s := &State{
		Device:          device,
		CDIValid:        true,
		GlideSlopeValid: true,
		NavSource:       NavSourceGPS,
		Kohlsman:        29.92,
		OAT:             15,
		DensityAltitude: 1200,
		PressureMB:      1013,
	}

	heading := filter.Params{Alpha: 0.15, Snap: 0.02}
	altitude := filter.Params{Alpha: 0.1, Snap: 1.0}
	cdi := filter.Params{Alpha: 0.3, Snap: 1.0}
	ball := filter.Params{Alpha: 0.2, Snap: 0.005}
	switch device {
	case settings.HSI:
		heading.Snap = 0.2
		cdi.Alpha = 0.15
	case settings.ISIS:
		altitude.Snap = 0.05
		ball = filter.Params{Alpha: 1}
	}

	s.Heading = filter.NewChannel(filter.UnsignedAngle, heading)
	s.CDIOffset = filter.NewChannel(filter.Scalar, cdi)
	s.GlideSlope = filter.NewChannel(filter.Scalar, filter.Params{Alpha: 0.15, Snap: 1.0})
	s.CDICourse = filter.NewChannel(filter.UnsignedAngle, filter.Params{Alpha: 0.15, Snap: 0.5})
	s.WindDir = filter.NewChannel(filter.UnsignedAngle, filter.Params{Alpha: 0.15, Snap: 5.0})
	s.WindSpeed = filter.NewChannel(filter.Scalar, filter.Params{Alpha: 0.15, Snap: 0.2})
	s.Airspeed = filter.NewChannel(filter.Scalar, filter.Params{Alpha: 0.1, Snap: 0.005})
	s.Ball = filter.NewChannel(filter.Scalar, ball)
	s.Bank = filter.NewChannel(filter.SignedAngle, filter.Params{Alpha: 0.3, Snap: 0.05})
	s.Altitude = filter.NewChannel(filter.Scalar, altitude)
	s.Pitch = filter.NewChannel(filter.Scalar, filter.Params{Alpha: 0.3, Snap: 0.05})
	s.VerticalSpeed = filter.NewIntChannel(filter.Params{Alpha: 0.03, Snap: 1})
	return s
}

func (s *State) channels() []*filter.Channel {
	return []*filter.Channel{
		s.Heading, s.CDIOffset, s.GlideSlope, s.CDICourse, s.WindDir, s.WindSpeed,
		s.Airspeed, s.Ball, s.Bank, s.Altitude, s.Pitch,
	}
}

// Step advances every smoothed channel by one frame.
func (s *State) Step() {
	for _, c := range s.channels() {
		c.Step()
	}
	s.VerticalSpeed.Step()
}

// NavGPS reports whether the nav source is GPS.
func (s *State) NavGPS() bool { return s.NavSource == NavSourceGPS }

// BearingAngle returns the raw bearing of a bearing pointer source in
// degrees. The ADF bearing is relative and is turned into a heading using
// the displayed heading.
func (s *State) BearingAngle(source int) float64 {
	switch source {
	case settings.BearingGPS:
		return s.GPSBearing
	case settings.BearingVLOC1:
		return s.Nav1Bearing
	case settings.BearingVLOC2:
		return s.Nav2Bearing
	case settings.BearingADF:
		return filter.WrapUnsigned(s.ADFBearing + s.Heading.Value() + 360)
	}
	return 0
}
