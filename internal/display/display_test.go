package display

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sweeney/flight-panel/internal/logic"
	"github.com/sweeney/flight-panel/internal/menu"
	"github.com/sweeney/flight-panel/internal/panel"
	"github.com/sweeney/flight-panel/internal/tape"
)

func TestHeldKey(t *testing.T) {
	tests := []struct {
		name    string
		pressed []bool
		want    []logic.ButtonEvent
	}{
		{
			name:    "short press clicks on release",
			pressed: []bool{true, true, false},
			want:    []logic.ButtonEvent{logic.ButtonIdle, logic.ButtonIdle, logic.ButtonClicked},
		},
		{
			name:    "long hold fires once and not on release",
			pressed: []bool{true, true, true, true, false},
			want:    []logic.ButtonEvent{logic.ButtonIdle, logic.ButtonIdle, logic.ButtonLongPressed, logic.ButtonIdle, logic.ButtonIdle},
		},
		{
			name:    "idle",
			pressed: []bool{false, false},
			want:    []logic.ButtonEvent{logic.ButtonIdle, logic.ButtonIdle},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var k heldKey
			var got []logic.ButtonEvent
			for _, p := range tt.pressed {
				got = append(got, k.update(p, 3))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadoutText(t *testing.T) {
	if got := speedText(tape.Readout{Dashed: true}); got != "---" {
		t.Errorf("dashed speed = %q", got)
	}
	if got := speedText(tape.Readout{Value: 119.6}); got != "120" {
		t.Errorf("speed = %q, want 120", got)
	}
	if got := altitudeText(tape.Readout{Value: -40, Negative: true}); got != "-40" {
		t.Errorf("altitude = %q, want -40", got)
	}
	if got := altitudeText(tape.Readout{Value: 12480}); got != "12480" {
		t.Errorf("altitude = %q, want 12480", got)
	}
}

func TestHeadingText(t *testing.T) {
	tests := map[int]string{0: "360", 360: "360", 5: "005", 271: "271", 725: "005"}
	for in, want := range tests {
		if got := headingText(in); got != want {
			t.Errorf("headingText(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestPressureText(t *testing.T) {
	tests := []struct {
		v    panel.AltitudeView
		want string
	}{
		{panel.AltitudeView{Kohlsman: 29.92}, "29.92IN"},
		{panel.AltitudeView{Kohlsman: 29.92, PressureMB: 1013}, "1013MB"},
		{panel.AltitudeView{PressureMB: 1013, StdPressure: true}, "STD"},
	}
	for _, tt := range tests {
		if got := pressureText(&tt.v); got != tt.want {
			t.Errorf("pressureText(%+v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestNavText(t *testing.T) {
	if got := eteText(0); got != "--:--" {
		t.Errorf("eteText(0) = %q", got)
	}
	if got := eteText(754); got != "12:34" {
		t.Errorf("eteText(754) = %q", got)
	}
	if got := eteText(3900); got != "1:05" {
		t.Errorf("eteText(3900) = %q", got)
	}
	if got := distanceText(12.34); got != "12.3NM" {
		t.Errorf("distanceText = %q", got)
	}
	if got := distanceText(250.4); got != "250NM" {
		t.Errorf("distanceText = %q", got)
	}
	if got := windText(270, 15.2); got != "270/15KT" {
		t.Errorf("windText = %q", got)
	}
	if got := windText(270, 0.4); got != "NO WIND" {
		t.Errorf("windText = %q", got)
	}
}

func TestBallOffsetClamps(t *testing.T) {
	if got := ballOffset(2); got != ballTravel {
		t.Errorf("ballOffset(2) = %v, want %v", got, ballTravel)
	}
	if got := ballOffset(-0.5); got != -ballTravel/2 {
		t.Errorf("ballOffset(-0.5) = %v", got)
	}
}

func TestSettingsWindow(t *testing.T) {
	var rows []menu.Row
	for i := 0; i < 12; i++ {
		rows = append(rows, menu.Row{Title: itoa(i), Highlighted: i == 11})
	}
	got := settingsWindow(rows, 10)
	if len(got) != 10 || got[9].Title != "11" {
		t.Errorf("window = %v, want last ten rows", got)
	}

	rows[11].Highlighted = false
	rows[0].Highlighted = true
	got = settingsWindow(rows, 10)
	if got[0].Title != "0" {
		t.Errorf("window starts at %q, want 0", got[0].Title)
	}
}
