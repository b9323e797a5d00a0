package menu

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sweeney/flight-panel/internal/settings"
)

type bump struct {
	Name     string
	Count    int
	Increase bool
}

type fakeSender struct {
	bumps   []bump
	buttons []string
}

func (f *fakeSender) SendEncoder(name string, count int, increase bool) {
	f.bumps = append(f.bumps, bump{name, count, increase})
}

func (f *fakeSender) SendButton(name string, push int) {
	f.buttons = append(f.buttons, name)
}

type fakeSource struct {
	headingBug int
	track      float64
	target     int
	gps        bool
	obs        bool
	obsCourse  float64
	cdiCourse  float64
}

func (f *fakeSource) HeadingBug() int      { return f.headingBug }
func (f *fakeSource) GroundTrack() float64 { return f.track }
func (f *fakeSource) TargetAltitude() int  { return f.target }
func (f *fakeSource) NavGPS() bool         { return f.gps }
func (f *fakeSource) OBSActive() bool      { return f.obs }
func (f *fakeSource) OBSCourse() float64   { return f.obsCourse }
func (f *fakeSource) CDICourse() float64   { return f.cdiCourse }

func plain(title string, visible bool) Item {
	return &item{title: title, visible: func() bool { return visible }}
}

func TestBrowsingSkipsInvisible(t *testing.T) {
	c := NewController([]Item{
		plain("a", true),
		plain("b", true),
		plain("c", false),
		plain("d", true),
	}, nil, nil)
	c.Open()

	var got []int
	for _i := 0; _i < 7; _i++ {
		got = append(got, c.Highlight())
		c.Turn(1)
	}
	want := []int{0, 1, 3, 0, 1, 3, 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("highlight sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowsingBackwardWraps(t *testing.T) {
	c := NewController([]Item{
		plain("a", true),
		plain("b", false),
		plain("c", true),
	}, nil, nil)
	c.Open()
	c.Turn(-1)
	if got := c.Highlight(); got != 2 {
		t.Errorf("highlight: got %d, want 2", got)
	}
	c.Turn(-3)
	if got := c.Highlight(); got != 0 {
		t.Errorf("highlight: got %d, want 0", got)
	}
}

func TestInitialHighlightIsFirstVisible(t *testing.T) {
	c := NewController([]Item{plain("a", false), plain("b", true)}, nil, nil)
	c.Open()
	if got := c.Highlight(); got != 1 {
		t.Errorf("highlight: got %d, want 1", got)
	}
}

func TestClosedControllerIgnoresInput(t *testing.T) {
	c := NewController([]Item{plain("a", true), plain("b", true)}, nil, nil)
	c.Turn(1)
	c.Press()
	if c.Highlight() != 0 || c.Active() {
		t.Errorf("closed controller changed: highlight %d, active %v", c.Highlight(), c.Active())
	}
}

func pfdController(src *fakeSource, out *fakeSender, s *settings.Settings, persisted *int) *Controller {
	return NewController(PFDItems(src, out, nil), s.Defs(), func() { *persisted++ })
}

func TestAdjustForwardsTurnsAsBumps(t *testing.T) {
	src := &fakeSource{headingBug: 90}
	out := &fakeSender{}
	s := settings.Defaults()
	var persisted int
	c := pfdController(src, out, &s, &persisted)
	c.Open()

	c.Turn(1) // Heading
	c.Press()
	if c.State() != Adjusting {
		t.Fatalf("state: got %v, want ADJUSTING", c.State())
	}
	c.Turn(3)
	c.Turn(-2)
	want := []bump{{EncHeading, 3, true}, {EncHeading, 2, false}}
	if diff := cmp.Diff(want, out.bumps); diff != "" {
		t.Errorf("bumps mismatch (-want +got):\n%s", diff)
	}

	c.Press()
	if c.State() != Browsing || !c.Active() {
		t.Errorf("after commit: state %v active %v, want BROWSING and open", c.State(), c.Active())
	}
	if c.Adjusting() != nil {
		t.Error("adjusting item not cleared on commit")
	}
}

func TestTrackHiddenOnGPS(t *testing.T) {
	src := &fakeSource{gps: true}
	s := settings.Defaults()
	var persisted int
	c := pfdController(src, &fakeSender{}, &s, &persisted)
	c.Open()

	c.Turn(1)
	c.Turn(1)
	if got := c.Highlight(); got != 3 {
		t.Errorf("highlight: got %d, want 3 (Altitude)", got)
	}
	v := c.View()
	for _, r := range v.Items {
		if r.Title == "Track" {
			t.Error("Track row shown while on GPS")
		}
	}
}

func TestSettingsAdjustment(t *testing.T) {
	s := settings.Defaults()
	var persisted int
	c := pfdController(&fakeSource{}, &fakeSender{}, &s, &persisted)
	c.Open()

	c.Turn(-1) // wraps to Setup
	c.Press()
	if c.State() != SettingsBrowsing {
		t.Fatalf("state: got %v, want SETTINGS_BROWSING", c.State())
	}

	// Scroll to Vne (row 10) and past the end.
	for _i := 0; _i < 12; _i++ {
		c.Turn(1)
	}
	c.Press()
	if c.State() != Adjusting {
		t.Fatalf("state: got %v, want ADJUSTING", c.State())
	}
	if got := c.Adjusting().Title(); got != "Vne" {
		t.Errorf("adjusting: got %q, want Vne", got)
	}
	c.Turn(5)
	c.Turn(1000)
	if s.Vne != 700 {
		t.Errorf("Vne: got %d, want 700", s.Vne)
	}

	c.Press()
	if c.State() != SettingsBrowsing {
		t.Errorf("state: got %v, want SETTINGS_BROWSING", c.State())
	}
	if c.Adjusting() != nil || c.transient != nil {
		t.Error("transient item survived commit")
	}
	if persisted != 1 {
		t.Errorf("persisted: got %d, want 1", persisted)
	}

	// Back row returns to browsing.
	for _i := 0; _i < 12; _i++ {
		c.Turn(-1)
	}
	c.Press()
	if c.State() != Browsing {
		t.Errorf("state: got %v, want BROWSING", c.State())
	}
}

func TestCloseDropsTransient(t *testing.T) {
	s := settings.Defaults()
	var persisted int
	c := pfdController(&fakeSource{}, &fakeSender{}, &s, &persisted)
	c.Open()
	c.BrowseSettings()
	c.Turn(1)
	c.Press()
	c.Close()
	if c.transient != nil || c.adjusting != nil {
		t.Error("transient item survived Close")
	}
	if c.State() != Browsing {
		t.Errorf("state: got %v, want BROWSING", c.State())
	}
}

func TestBearingSelection(t *testing.T) {
	s := settings.Defaults()
	s.Bearing2 = settings.BearingVLOC1
	var persisted int
	c := NewController(HSIItems(&fakeSource{}, &s, &fakeSender{}, nil), nil, func() { persisted++ })
	c.Open()

	// Back, Heading, LOC Crse, (OBS hidden), Bearing 1, Bearing 2
	for _i := 0; _i < 4; _i++ {
		c.Turn(1)
	}
	if got := c.items[c.Highlight()].Title(); got != "Bearing 2" {
		t.Fatalf("highlight: got %q, want Bearing 2", got)
	}
	c.Press()
	if c.State() != Selecting {
		t.Fatalf("state: got %v, want SELECTING", c.State())
	}
	if got := c.View().Selected; got != 2 {
		t.Errorf("initial selection: got %d, want 2", got)
	}

	c.Turn(1)
	c.Turn(1)
	c.Turn(1) // clamped at ADF
	c.Press()

	if s.Bearing2 != settings.BearingADF {
		t.Errorf("Bearing2: got %d, want %d", s.Bearing2, settings.BearingADF)
	}
	if persisted != 1 {
		t.Errorf("persisted: got %d, want 1", persisted)
	}
	if c.Active() {
		t.Error("menu still open after selection")
	}
}

func TestDeviceItemSwitches(t *testing.T) {
	var got settings.DeviceType = -1
	c := NewController(PFDItems(&fakeSource{}, &fakeSender{}, func(d settings.DeviceType) { got = d }), nil, nil)
	c.Open()
	c.Turn(-1)
	c.Turn(-1) // HSI
	c.Press()
	if got != settings.HSI {
		t.Errorf("switch: got %v, want hsi", got)
	}
	if c.Active() {
		t.Error("menu still open after device switch")
	}
}

func TestItemValues(t *testing.T) {
	src := &fakeSource{headingBug: 7, track: 275.9, target: 0, obsCourse: 45, cdiCourse: 310}
	pfd := PFDItems(src, &fakeSender{}, nil)
	if got := pfd[1].Value(); got != "007°" {
		t.Errorf("heading: got %q, want 007°", got)
	}
	if got := pfd[2].Value(); got != "275°" {
		t.Errorf("track: got %q, want 275°", got)
	}
	if got := pfd[3].Value(); got != "----" {
		t.Errorf("altitude: got %q, want ----", got)
	}
	src.target = 4500
	if got := pfd[3].Value(); got != "4500" {
		t.Errorf("altitude: got %q, want 4500", got)
	}

	s := settings.Defaults()
	hsi := HSIItems(src, &s, &fakeSender{}, nil)
	if got := hsi[2].Value(); got != "045°" {
		t.Errorf("LOC course: got %q, want 045°", got)
	}
	if got := hsi[4].Value(); got != "Off" {
		t.Errorf("bearing 1: got %q, want Off", got)
	}
	if got := BearingName(9); got != "???" {
		t.Errorf("BearingName(9): got %q, want ???", got)
	}
}

func TestBumpZeroSendsNothing(t *testing.T) {
	out := &fakeSender{}
	Bump(out, EncKohls, 0)
	if len(out.bumps) != 0 {
		t.Errorf("bumps: got %d, want 0", len(out.bumps))
	}
}
