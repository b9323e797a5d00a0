package telemetry

// SnapshotVersion is bumped when Snapshot changes shape.
const SnapshotVersion = 2

// Snapshot is the raw flight state carried across a device switch.
type Snapshot struct {
	HeadingBug      int     `msgpack:"hdg_bug"`
	ApproachType    int     `msgpack:"app_type"`
	CDIOffset       float64 `msgpack:"cdi_off"`
	CDIValid        bool    `msgpack:"cdi_val"`
	ToFrom          int     `msgpack:"to_from"`
	GlideSlope      float64 `msgpack:"gsi"`
	GlideSlopeValid bool    `msgpack:"gsi_val"`
	GroundSpeed     int     `msgpack:"gnd_spd"`
	GroundTrack     float64 `msgpack:"gnd_trk"`
	Heading         float64 `msgpack:"hdg"`
	NavSource       int     `msgpack:"nav_src"`
	DesiredTrack    float64 `msgpack:"des_trk"`
	DesiredValid    bool    `msgpack:"des_val"`

	ADFBearing    float64 `msgpack:"adf_brg"`
	ADFValid      bool    `msgpack:"adf_val"`
	CDICourse     float64 `msgpack:"cdi_dir"`
	CDIScaleLabel int     `msgpack:"cdi_lbl"`
	DistNext      float64 `msgpack:"dist_wp"`
	GPSBearing    float64 `msgpack:"gps_brg"`
	NavCDILabel   int     `msgpack:"nav_lbl"`
	Nav1Bearing   float64 `msgpack:"v1_brg"`
	Nav1Type      int     `msgpack:"v1_type"`
	Nav2Bearing   float64 `msgpack:"v2_brg"`
	Nav2Type      int     `msgpack:"v2_type"`
	OBSActive     bool    `msgpack:"obs_on"`
	OBSCourse     float64 `msgpack:"obs_ang"`
	WindDir       float64 `msgpack:"wnd_dir"`
	WindSpeed     float64 `msgpack:"wnd_spd"`

	Airspeed        float64 `msgpack:"airspd"`
	APActive        bool    `msgpack:"ap_act"`
	APAltCaptured   bool    `msgpack:"ap_alt_c"`
	TargetAltitude  int     `msgpack:"tgt_alt"`
	APLateralArmed  int     `msgpack:"ap_l_arm"`
	APVerticalArmed int     `msgpack:"ap_v_arm"`
	APLateralMode   int     `msgpack:"ap_l_md"`
	APSpeedBug      int     `msgpack:"ap_spd"`
	APVerticalMode  int     `msgpack:"ap_v_md"`
	APVSBug         int     `msgpack:"ap_vs"`
	YawDamper       bool    `msgpack:"ap_yaw"`
	Ball            float64 `msgpack:"ball"`
	Bank            float64 `msgpack:"bank"`
	FDActive        bool    `msgpack:"fd_act"`
	FDBank          float64 `msgpack:"fd_bank"`
	FDPitch         float64 `msgpack:"fd_pitch"`
	Altitude        float64 `msgpack:"alt"`
	Kohlsman        float64 `msgpack:"kohl"`
	OAT             int     `msgpack:"oat"`
	Pitch           float64 `msgpack:"pitch"`
	TurnRate        float64 `msgpack:"trn_rt"`
	VerticalSpeed   int     `msgpack:"v_spd"`
	NavCourse       float64 `msgpack:"nav_crs"`
}

// Snapshot captures the raw values of s.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		HeadingBug:      s.HeadingBug,
		ApproachType:    s.ApproachType,
		CDIOffset:       s.CDIOffset.Raw(),
		CDIValid:        s.CDIValid,
		ToFrom:          s.ToFrom,
		GlideSlope:      s.GlideSlope.Raw(),
		GlideSlopeValid: s.GlideSlopeValid,
		GroundSpeed:     s.GroundSpeed,
		GroundTrack:     s.GroundTrack,
		Heading:         s.Heading.Raw(),
		NavSource:       s.NavSource,
		DesiredTrack:    s.DesiredTrack,
		DesiredValid:    s.DesiredTrackValid,

		ADFBearing:    s.ADFBearing,
		ADFValid:      s.ADFValid,
		CDICourse:     s.CDICourse.Raw(),
		CDIScaleLabel: s.CDIScaleLabel,
		DistNext:      s.DistNext,
		GPSBearing:    s.GPSBearing,
		NavCDILabel:   s.NavCDILabel,
		Nav1Bearing:   s.Nav1Bearing,
		Nav1Type:      s.Nav1Type,
		Nav2Bearing:   s.Nav2Bearing,
		Nav2Type:      s.Nav2Type,
		OBSActive:     s.OBSActive,
		OBSCourse:     s.OBSCourse,
		WindDir:       s.WindDir.Raw(),
		WindSpeed:     s.WindSpeed.Raw(),

		Airspeed:        s.Airspeed.Raw(),
		APActive:        s.APActive,
		APAltCaptured:   s.APAltCaptured,
		TargetAltitude:  s.TargetAltitude,
		APLateralArmed:  s.APLateralArmed,
		APVerticalArmed: s.APVerticalArmed,
		APLateralMode:   s.APLateralMode,
		APSpeedBug:      s.APSpeedBug,
		APVerticalMode:  s.APVerticalMode,
		APVSBug:         s.APVSBug,
		YawDamper:       s.YawDamper,
		Ball:            s.Ball.Raw(),
		Bank:            s.Bank.Raw(),
		FDActive:        s.FDActive,
		FDBank:          s.FDBank,
		FDPitch:         s.FDPitch,
		Altitude:        s.Altitude.Raw(),
		Kohlsman:        s.Kohlsman,
		OAT:             s.OAT,
		Pitch:           s.Pitch.Raw(),
		TurnRate:        s.TurnRate,
		VerticalSpeed:   s.VerticalSpeed.Raw(),
		NavCourse:       s.NavCourse,
	}
}

// Restore loads snap into s. Smoothed channels jump straight to the saved
// values.
func (s *State) Restore(snap Snapshot) {
	s.HeadingBug = snap.HeadingBug
	s.ApproachType = snap.ApproachType
	s.CDIOffset.Reset(snap.CDIOffset)
	s.CDIValid = snap.CDIValid
	s.ToFrom = snap.ToFrom
	s.GlideSlope.Reset(snap.GlideSlope)
	s.GlideSlopeValid = snap.GlideSlopeValid
	s.GroundSpeed = snap.GroundSpeed
	s.GroundTrack = snap.GroundTrack
	s.Heading.Reset(snap.Heading)
	s.NavSource = snap.NavSource
	s.DesiredTrack = snap.DesiredTrack
	s.DesiredTrackValid = snap.DesiredValid

	s.ADFBearing = snap.ADFBearing
	s.ADFValid = snap.ADFValid
	s.CDICourse.Reset(snap.CDICourse)
	s.CDIScaleLabel = snap.CDIScaleLabel
	s.DistNext = snap.DistNext
	s.GPSBearing = snap.GPSBearing
	s.NavCDILabel = snap.NavCDILabel
	s.Nav1Bearing = snap.Nav1Bearing
	s.Nav1Type = snap.Nav1Type
	s.Nav2Bearing = snap.Nav2Bearing
	s.Nav2Type = snap.Nav2Type
	s.OBSActive = snap.OBSActive
	s.OBSCourse = snap.OBSCourse
	s.WindDir.Reset(snap.WindDir)
	s.WindSpeed.Reset(snap.WindSpeed)

	s.Airspeed.Reset(snap.Airspeed)
	s.APActive = snap.APActive
	s.APAltCaptured = snap.APAltCaptured
	s.TargetAltitude = snap.TargetAltitude
	s.APLateralArmed = snap.APLateralArmed
	s.APVerticalArmed = snap.APVerticalArmed
	s.APLateralMode = snap.APLateralMode
	s.APSpeedBug = snap.APSpeedBug
	s.APVerticalMode = snap.APVerticalMode
	s.APVSBug = snap.APVSBug
	s.YawDamper = snap.YawDamper
	s.Ball.Reset(snap.Ball)
	s.Bank.Reset(snap.Bank)
	s.FDActive = snap.FDActive
	s.FDBank = snap.FDBank
	s.FDPitch = snap.FDPitch
	s.Altitude.Reset(snap.Altitude)
	s.Kohlsman = snap.Kohlsman
	s.OAT = snap.OAT
	s.Pitch.Reset(snap.Pitch)
	s.TurnRate = snap.TurnRate
	s.VerticalSpeed.Reset(snap.VerticalSpeed)
	s.NavCourse = snap.NavCourse
}
