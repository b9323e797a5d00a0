package telemetry

import (
	"math"
	"strconv"
	"strings"

	"github.com/sweeney/flight-panel/internal/logic"
	"github.com/sweeney/flight-panel/internal/settings"
)

// Message ids shared by every instrument.
const (
	IDPowerSaving  = -2
	IDStop         = -1
	IDHeadingBug   = 0
	IDApproachType = 1
	IDCDIOffset    = 2
	IDCDIValid     = 3
	IDToFrom       = 4
	IDGlideSlope   = 5
	IDGSValid      = 6
	IDGroundSpeed  = 7
	IDGroundTrack  = 8
	IDHeading      = 9
	IDNavSource    = 10
	IDDevice       = 11
	IDBacklight    = 12
	IDPower        = 13
	IDPowerControl = 14
)

// HSI message ids.
const (
	IDADFBearing = 30 + iota
	IDADFValid
	IDCDICourse
	IDCDIScaleLabel
	IDDesiredTrack
	IDDesiredTrackValid
	IDDistNext
	IDGPSBearing
	IDNavCDILabel
	IDNav1Bearing
	IDNav1Type
	IDNav2Bearing
	IDNav2Type
	IDOBSActive
	IDOBSCourse
	IDWindDir
	IDWindSpeed
	IDETE
)

// PFD message ids. The ISIS shares airspeed, ball, bank, altitude,
// kohlsman and pitch.
const (
	IDAirspeed = 60 + iota
	IDAPActive
	IDAPAltCaptured
	IDTargetAltitude
	IDAPLateralArmed
	IDAPVerticalArmed
	IDAPLateralMode
	IDAPSpeedBug
	IDAPVerticalMode
	IDAPVSBug
	IDYawDamper
	IDBall
	IDBank
	IDFDActive
	IDFDBank
	IDFDPitch
	IDPFDDesiredTrack
	IDAltitude
	IDKohlsman
	IDOAT
	IDPitch
	IDTurnRate
	IDVSpeeds
	IDVerticalSpeed
	IDNavCourse
	IDDensityAltitude
	IDTrueAirspeed
)

// ISIS message ids.
const (
	IDPressureMB = 100 + iota
	IDStdPressure
	IDMach
)

// Action says what a message asks of the rest of the panel beyond updating
// the flight state.
type Action int

const (
	NoAction Action = iota
	SetPower
	SwitchDevice
	SetBacklight
	SetPowerControl
	SetVSpeeds
)

// Command is the result of applying one message.
type Command struct {
	Action  Action
	Power   logic.PowerState
	Device  settings.DeviceType
	Level   int
	Control logic.PowerControl
	Text    string
}

// Apply updates s from one message. Values that do not parse are ignored
// and leave the previous value in place. Ids that do not belong to the
// instrument are ignored.
func (s *State) Apply(id int, value string) Command {
	if id < 30 {
		return s.applyCommon(id, value)
	}
	switch s.Device {
	case settings.HSI:
		s.applyHSI(id, value)
	case settings.PFD:
		return s.applyPFD(id, value)
	case settings.ISIS:
		s.applyISIS(id, value)
	}
	return Command{}
}

func (s *State) applyCommon(id int, value string) Command {
	switch id {
	case IDPowerSaving:
		if n, ok := parseInt(value); ok {
			if n == 1 {
				return Command{Action: SetPower, Power: logic.ShuttingDown}
			}
			return Command{Action: SetPower, Power: logic.PowerOn}
		}
	case IDStop:
		return Command{Action: SetPower, Power: logic.ShuttingDown}
	case IDHeadingBug:
		setInt(&s.HeadingBug, value)
	case IDApproachType:
		setInt(&s.ApproachType, value)
	case IDCDIOffset:
		setChannel(s.CDIOffset.Set, value)
	case IDCDIValid:
		setBool(&s.CDIValid, value)
	case IDToFrom:
		setInt(&s.ToFrom, value)
	case IDGlideSlope:
		setChannel(s.GlideSlope.Set, value)
	case IDGSValid:
		setBool(&s.GlideSlopeValid, value)
	case IDGroundSpeed:
		setInt(&s.GroundSpeed, value)
	case IDGroundTrack:
		setFloat(&s.GroundTrack, value)
	case IDHeading:
		setChannel(s.Heading.Set, value)
	case IDNavSource:
		setInt(&s.NavSource, value)
	case IDDevice:
		if n, ok := parseInt(value); ok {
			d := settings.DeviceType(n)
			if d.Valid() && d != s.Device {
				return Command{Action: SwitchDevice, Device: d}
			}
		}
	case IDBacklight:
		if n, ok := parseInt(value); ok {
			return Command{Action: SetBacklight, Level: max(0, min(n, 255))}
		}
	case IDPower:
		if n, ok := parseInt(value); ok {
			switch n {
			case 0:
				return Command{Action: SetPower, Power: logic.ShuttingDown}
			case 1:
				return Command{Action: SetPower, Power: logic.PowerOn}
			}
		}
	case IDPowerControl:
		if n, ok := parseInt(value); ok && n >= int(logic.Manual) && n <= int(logic.AlwaysOn) {
			return Command{Action: SetPowerControl, Control: logic.PowerControl(n)}
		}
	}
	return Command{}
}

func (s *State) applyHSI(id int, value string) {
	switch id {
	case IDADFBearing:
		setFloat(&s.ADFBearing, value)
	case IDADFValid:
		setBool(&s.ADFValid, value)
	case IDCDICourse:
		setChannel(s.CDICourse.Set, value)
	case IDCDIScaleLabel:
		setInt(&s.CDIScaleLabel, value)
	case IDDesiredTrack:
		setFloat(&s.DesiredTrack, value)
	case IDDesiredTrackValid:
		setBool(&s.DesiredTrackValid, value)
	case IDDistNext:
		setFloat(&s.DistNext, value)
	case IDGPSBearing:
		setFloat(&s.GPSBearing, value)
	case IDNavCDILabel:
		setInt(&s.NavCDILabel, value)
	case IDNav1Bearing:
		setFloat(&s.Nav1Bearing, value)
	case IDNav1Type:
		setInt(&s.Nav1Type, value)
	case IDNav2Bearing:
		setFloat(&s.Nav2Bearing, value)
	case IDNav2Type:
		setInt(&s.Nav2Type, value)
	case IDOBSActive:
		setBool(&s.OBSActive, value)
	case IDOBSCourse:
		setFloat(&s.OBSCourse, value)
	case IDWindDir:
		setChannel(s.WindDir.Set, value)
	case IDWindSpeed:
		setChannel(s.WindSpeed.Set, value)
	case IDETE:
		setInt(&s.ETE, value)
	}
}

func (s *State) applyPFD(id int, value string) Command {
	switch id {
	case IDAirspeed:
		setChannel(s.Airspeed.Set, value)
	case IDAPActive:
		setBool(&s.APActive, value)
	case IDAPAltCaptured:
		setBool(&s.APAltCaptured, value)
	case IDTargetAltitude:
		setInt(&s.TargetAltitude, value)
	case IDAPLateralArmed:
		setInt(&s.APLateralArmed, value)
	case IDAPVerticalArmed:
		setInt(&s.APVerticalArmed, value)
	case IDAPLateralMode:
		setInt(&s.APLateralMode, value)
	case IDAPSpeedBug:
		setInt(&s.APSpeedBug, value)
	case IDAPVerticalMode:
		setInt(&s.APVerticalMode, value)
	case IDAPVSBug:
		setInt(&s.APVSBug, value)
	case IDYawDamper:
		setBool(&s.YawDamper, value)
	case IDBall:
		setChannel(s.Ball.Set, value)
	case IDBank:
		setChannel(s.Bank.Set, value)
	case IDFDActive:
		setBool(&s.FDActive, value)
	case IDFDBank:
		setFloat(&s.FDBank, value)
	case IDFDPitch:
		setFloat(&s.FDPitch, value)
	case IDPFDDesiredTrack:
		setFloat(&s.DesiredTrack, value)
	case IDAltitude:
		setChannel(s.Altitude.Set, value)
	case IDKohlsman:
		setFloat(&s.Kohlsman, value)
	case IDOAT:
		setInt(&s.OAT, value)
	case IDPitch:
		setChannel(s.Pitch.Set, value)
	case IDTurnRate:
		setFloat(&s.TurnRate, value)
	case IDVSpeeds:
		return Command{Action: SetVSpeeds, Text: value}
	case IDVerticalSpeed:
		if n, ok := parseInt(value); ok {
			s.VerticalSpeed.Set(n)
		}
	case IDNavCourse:
		setFloat(&s.NavCourse, value)
	case IDDensityAltitude:
		setInt(&s.DensityAltitude, value)
	case IDTrueAirspeed:
		setFloat(&s.TrueAirspeed, value)
	}
	return Command{}
}

func (s *State) applyISIS(id int, value string) {
	switch id {
	case IDAirspeed:
		setChannel(s.Airspeed.Set, value)
	case IDBall:
		setChannel(s.Ball.Set, value)
	case IDBank:
		setChannel(s.Bank.Set, value)
	case IDAltitude:
		setChannel(s.Altitude.Set, value)
	case IDKohlsman:
		setFloat(&s.Kohlsman, value)
	case IDPitch:
		setChannel(s.Pitch.Set, value)
	case IDPressureMB:
		setInt(&s.PressureMB, value)
	case IDStdPressure:
		setBool(&s.StdPressure, value)
	case IDMach:
		setFloat(&s.Mach, value)
	}
}

func parseFloat(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseInt accepts integers and truncates decimal values.
func parseInt(value string) (int, bool) {
	v := strings.TrimSpace(value)
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, ok := parseFloat(v)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func setFloat(dst *float64, value string) {
	if f, ok := parseFloat(value); ok {
		*dst = f
	}
}

func setInt(dst *int, value string) {
	if n, ok := parseInt(value); ok {
		*dst = n
	}
}

func setBool(dst *bool, value string) {
	if n, ok := parseInt(value); ok {
		*dst = n != 0
	}
}

func setChannel(set func(float64), value string) {
	if f, ok := parseFloat(value); ok {
		set(f)
	}
}
