package logic

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestNewPowerIsInvalid(t *testing.T) {
	p := NewPower(Manual, 100)
	if p.State() != PowerInvalid {
		t.Errorf("initial state: got %s, want %s", p.State(), PowerInvalid)
	}
}

func TestSetSameStateIsNoop(t *testing.T) {
	p := NewPower(Manual, 100)
	if tr := p.Set(PowerOn, t0); tr == nil {
		t.Fatal("expected transition from INVALID to POWER_ON")
	}
	if tr := p.Set(PowerOn, t0.Add(time.Second)); tr != nil {
		t.Errorf("expected nil transition, got %+v", tr)
	}
}

func TestPowerOnRestoresBacklight(t *testing.T) {
	p := NewPower(Manual, 100)
	p.Set(PowerOn, t0)
	p.Set(PowerOff, t0)
	tr := p.Set(PowerOn, t0)
	if tr == nil {
		t.Fatal("expected transition")
	}
	if !tr.SetBacklight || tr.Backlight != 255 {
		t.Errorf("backlight: got (%v, %d), want (true, 255)", tr.SetBacklight, tr.Backlight)
	}
	if !tr.Redraw {
		t.Error("expected redraw on power on")
	}
	if tr.From != PowerOff || tr.To != PowerOn {
		t.Errorf("transition: got %s -> %s", tr.From, tr.To)
	}
}

func TestPowerOffZeroesBacklight(t *testing.T) {
	p := NewPower(Manual, 80)
	p.Set(PowerOn, t0)
	tr := p.Set(PowerOff, t0)
	if tr == nil || !tr.SetBacklight || tr.Backlight != 0 {
		t.Errorf("got %+v, want backlight 0", tr)
	}
}

func TestShutdownTimeout(t *testing.T) {
	p := NewPower(Manual, 100)
	p.Set(PowerOn, t0)
	p.Set(ShuttingDown, t0)

	for ms := 0; ms < 45000; ms += 250 {
		now := t0.Add(time.Duration(ms) * time.Millisecond)
		if tr := p.Tick(now); tr != nil {
			t.Fatalf("at %dms: unexpected transition to %s", ms, tr.To)
		}
		if p.State() != ShuttingDown {
			t.Fatalf("at %dms: got %s, want SHUTTING_DOWN", ms, p.State())
		}
	}

	tr := p.Tick(t0.Add(45 * time.Second))
	if tr == nil || tr.To != PowerOff {
		t.Fatalf("at 45s: got %+v, want POWER_OFF", tr)
	}
	if p.State() != PowerOff {
		t.Errorf("state: got %s, want POWER_OFF", p.State())
	}
}

func TestAlwaysOnOverridesPowerOff(t *testing.T) {
	p := NewPower(AlwaysOn, 100)
	p.Set(PowerOn, t0)
	p.Set(ShuttingDown, t0)
	p.Tick(t0.Add(time.Minute))
	if p.State() != PowerOn {
		t.Errorf("state: got %s, want POWER_ON", p.State())
	}
	if tr := p.Set(PowerOff, t0); tr != nil {
		t.Errorf("PowerOff in always-on: got %+v, want nil", tr)
	}
}

func TestInteractionWhileShuttingDown(t *testing.T) {
	p := NewPower(Manual, 100)
	p.Set(PowerOn, t0)
	p.Set(ShuttingDown, t0)

	consumed, tr := p.HandleInput(true, ButtonIdle, t0.Add(10*time.Second))
	if !consumed {
		t.Error("expected input to be consumed")
	}
	if tr == nil || tr.To != BatteryPowered {
		t.Fatalf("got %+v, want BATTERY_POWERED", tr)
	}
	// The shutdown timeout no longer applies on battery.
	if tr := p.Tick(t0.Add(46 * time.Second)); tr != nil {
		t.Errorf("unexpected transition on battery: %+v", tr)
	}
}

func TestHeldPowerForcesOn(t *testing.T) {
	p := NewPower(Manual, 100)
	p.Set(PowerOn, t0)
	p.Set(ShuttingDown, t0)
	consumed, tr := p.HandleInput(true, ButtonPressed, t0.Add(time.Second))
	if !consumed || tr == nil || tr.To != PowerOn {
		t.Errorf("got consumed=%v tr=%+v, want POWER_ON", consumed, tr)
	}
}

func TestPowerButton(t *testing.T) {
	p := NewPower(Manual, 100)
	p.Set(PowerOn, t0)

	if consumed, _ := p.HandleInput(true, ButtonClicked, t0); consumed {
		t.Error("click while on should pass through")
	}
	consumed, tr := p.HandleInput(true, ButtonLongPressed, t0)
	if !consumed || tr == nil || tr.To != ShuttingDown {
		t.Fatalf("long press: got %+v, want SHUTTING_DOWN", tr)
	}
	p.Tick(t0.Add(45 * time.Second))
	if p.State() != PowerOff {
		t.Fatalf("state: got %s, want POWER_OFF", p.State())
	}
	if consumed, tr := p.HandleInput(true, ButtonIdle, t0.Add(50*time.Second)); !consumed || tr != nil {
		t.Errorf("encoder while off: got consumed=%v tr=%+v", consumed, tr)
	}
	consumed, tr = p.HandleInput(true, ButtonClicked, t0.Add(60*time.Second))
	if !consumed || tr == nil || tr.To != PowerOn {
		t.Errorf("button while off: got %+v, want POWER_ON", tr)
	}
}

func TestBatteryPercent(t *testing.T) {
	p := NewPower(Manual, 100)
	if got := p.BatteryPercent(t0); got != 100 {
		t.Errorf("not on battery: got %d, want 100", got)
	}
	p.Set(PowerOn, t0)
	p.Set(ShuttingDown, t0)
	p.HandleInput(true, ButtonIdle, t0)

	tests := []struct {
		after time.Duration
		want  int
	}{
		{0, 100},
		{90 * time.Minute, 50},
		{162 * time.Minute, 10},
		{3 * time.Hour, 0},
		{4 * time.Hour, 0},
	}
	for _, tt := range tests {
		if got := p.BatteryPercent(t0.Add(tt.after)); got != tt.want {
			t.Errorf("after %v: got %d, want %d", tt.after, got, tt.want)
		}
	}

	tr := p.Tick(t0.Add(3 * time.Hour))
	if tr == nil || tr.To != PowerOff {
		t.Errorf("battery exhausted: got %+v, want POWER_OFF", tr)
	}
}

func TestShutdownRemaining(t *testing.T) {
	p := NewPower(Manual, 100)
	p.Set(ShuttingDown, t0)
	if got := p.ShutdownRemaining(t0.Add(15 * time.Second)); got != 30*time.Second {
		t.Errorf("got %v, want 30s", got)
	}
	if got := p.ShutdownRemaining(t0.Add(time.Minute)); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestGamma(t *testing.T) {
	tests := []struct {
		pct, want int
	}{
		{0, 40},
		{1, 40},
		{50, 107},
		{100, 255},
		{150, 255},
	}
	for _, tt := range tests {
		if got := Gamma(tt.pct); got != tt.want {
			t.Errorf("Gamma(%d): got %d, want %d", tt.pct, got, tt.want)
		}
	}
}

func TestBatteryBars(t *testing.T) {
	tests := []struct {
		pct, want int
	}{
		{100, 4}, {86, 4}, {85, 3}, {71, 3}, {70, 2}, {46, 2}, {45, 1}, {26, 1}, {25, 0}, {0, 0},
	}
	for _, tt := range tests {
		if got := BatteryBars(tt.pct); got != tt.want {
			t.Errorf("BatteryBars(%d): got %d, want %d", tt.pct, got, tt.want)
		}
	}
}

func TestSetControl(t *testing.T) {
	p := NewPower(Manual, 100)
	p.SetControl(DeviceManaged)
	if p.Control() != DeviceManaged {
		t.Errorf("got %v, want DEVICE_MANAGED", p.Control())
	}
	p.SetControl(PowerControl(7))
	if p.Control() != DeviceManaged {
		t.Errorf("invalid mode changed control to %v", p.Control())
	}
}
