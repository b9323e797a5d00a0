package panel

import (
	"github.com/sweeney/flight-panel/internal/attitude"
	"github.com/sweeney/flight-panel/internal/logic"
	"github.com/sweeney/flight-panel/internal/menu"
	"github.com/sweeney/flight-panel/internal/settings"
	"github.com/sweeney/flight-panel/internal/tape"
)

// Color is a display color for markers, arcs and annunciations.
type Color int

const (
	White Color = iota
	Cyan
	Magenta
	Green
	Yellow
	Red
)

// Marker is a labeled position on a tape or dial.
type Marker struct {
	Label   string
	Pos     float64
	Color   Color
	Clamped bool // the value is off the visible tape and Pos sits at its edge
}

// Arc is a colored band along the speed tape between two positions.
type Arc struct {
	From, To float64
	Color    Color
}

// SpeedView is the airspeed tape.
type SpeedView struct {
	Tape         tape.Output
	Trend        float64 // knots expected in the trend horizon
	TrendVisible bool
	TrendPos     float64 // tape position of the trend vector tip
	Markers      []Marker
	Arcs         []Arc
	Bug          *Marker
	TAS          int
	GroundSpeed  int
	Mach         float64
}

// AltitudeView is the altitude tape and its alerting.
type AltitudeView struct {
	Tape        tape.Output
	Target      int
	TargetLabel string
	TargetBug   *Marker
	AlertState  logic.AlertState
	AlertColor  logic.AlertColor
	Kohlsman    float64
	PressureMB  int
	StdPressure bool
}

// HeadingView is the heading tape (PFD) or compass card (HSI).
type HeadingView struct {
	Tape    tape.Output
	Heading float64
	Readout int
	Bug     Marker
	Track   Marker
	Desired *Marker
}

// VerticalSpeedView is the vertical speed pointer.
type VerticalSpeedView struct {
	FeetPerMinute int
	Offset        float64 // pointer offset in pixels, up is negative
	Bug           *Marker
}

// BearingView is one HSI bearing pointer.
type BearingView struct {
	Label   string
	Angle   float64 // relative to the compass card
	Visible bool
}

// NavView is the course deviation and navigation block.
type NavView struct {
	Source         string // GPS or the nav receiver label
	GPS            bool
	Course         float64
	Deviation      float64
	DeviationOK    bool
	ToFrom         int
	GlideSlope     float64
	GlideSlopeOK   bool
	ScaleLabel     string
	Approach       string
	DistNext       float64
	ETE            int
	WindDir        float64
	WindSpeed      float64
	DesiredTrack   float64
	DesiredTrackOK bool
}

// Annunciator is the autopilot mode strip.
type Annunciator struct {
	Active        bool
	LateralMode   string
	VerticalMode  string
	LateralArmed  string
	VerticalArmed string
	YawDamper     bool
	AltCaptured   bool
	Target        string // vertical mode target with units
}

// ShutdownView is the countdown shown while shutting down.
type ShutdownView struct {
	Seconds int
}

// BatteryView is the battery level indicator.
type BatteryView struct {
	Percent int
	Bars    int
}

// Frame is the complete output of one Update, handed to the renderer.
type Frame struct {
	Device    settings.DeviceType
	Power     logic.PowerState
	Backlight int
	Blank     bool // display off: draw nothing
	Redraw    bool // repaint everything, not just what changed

	Shutdown *ShutdownView
	Battery  *BatteryView
	Stale    bool

	Attitude       *attitude.Frame
	FlightDirector *attitude.Cue
	StandardRate   float64 // bank for a standard rate turn, 0 when hidden
	Ball           float64
	TurnRate       float64

	Speed         *SpeedView
	Altitude      *AltitudeView
	Heading       *HeadingView
	VerticalSpeed *VerticalSpeedView
	Nav           *NavView
	Bearings      []BearingView
	Autopilot     *Annunciator
	OAT           int

	Menu       menu.View
	Brightness *int // popup percentage when open
}
