package filter

import (
	"math"
	"testing"
	"time"
)

func TestFloatSnapsWithinThreshold(t *testing.T) {
	p := Params{Alpha: 0.1, Snap: 1.0}
	tests := []struct {
		input, current float64
	}{
		{100, 100},
		{100, 99},
		{100, 101},
		{100, 99.5},
		{-3, -2},
	}
	for _, tt := range tests {
		got := Float(tt.input, tt.current, p)
		if got != tt.input {
			t.Errorf("Float(%v, %v): got %v, want %v", tt.input, tt.current, got, tt.input)
		}
	}
}

func TestFloatNoOvershoot(t *testing.T) {
	p := Params{Alpha: 0.3, Snap: 0.05}
	for _, input := range []float64{-500, -12.5, 0, 3, 250} {
		for _, current := range []float64{-400, -1, 0, 7, 1000} {
			diff := input - current
			if math.Abs(diff) <= p.Snap {
				continue
			}
			got := Float(input, current, p)
			newDiff := input - got
			if math.Abs(newDiff) >= math.Abs(diff) {
				t.Errorf("Float(%v, %v): |diff| not reduced: %v -> %v", input, current, diff, newDiff)
			}
			if newDiff != 0 && math.Signbit(newDiff) != math.Signbit(diff) {
				t.Errorf("Float(%v, %v): crossed the target, got %v", input, current, got)
			}
		}
	}
}

func TestFloatConverges(t *testing.T) {
	p := Params{Alpha: 0.1, Snap: 0.005}
	v := 0.0
	for i := 0; i < 1000 && v != 120; i++ {
		v = Float(120, v, p)
	}
	if v != 120 {
		t.Errorf("did not converge: got %v, want 120", v)
	}
}

func TestIntMinimumStep(t *testing.T) {
	p := Params{Alpha: 0.03, Snap: 1}
	tests := []struct {
		name           string
		input, current int
		want           int
	}{
		{"snap", 500, 499, 500},
		{"unit step up", 10, 0, 1},
		{"unit step down", -10, 0, -1},
		{"proportional", 1000, 0, 30},
		{"proportional down", -1000, 0, -30},
	}
	for _, tt := range tests {
		got := Int(tt.input, tt.current, p)
		if got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestIntConverges(t *testing.T) {
	p := Params{Alpha: 0.03, Snap: 1}
	v := 0
	for i := 0; i < 10000 && v != 37; i++ {
		v = Int(37, v, p)
	}
	if v != 37 {
		t.Errorf("did not converge: got %d, want 37", v)
	}
}

func TestUnsignedRange(t *testing.T) {
	p := Params{Alpha: 0.15, Snap: 0.02}
	values := []float64{0, 0.01, 1, 90, 179.99, 180, 180.01, 270, 359, 359.99, 360, 720, -1, -359}
	for _, input := range values {
		for _, current := range values {
			got := Unsigned(input, current, p)
			if got < 0 || got >= 360 {
				t.Errorf("Unsigned(%v, %v): got %v, outside [0,360)", input, current, got)
			}
		}
	}
}

func TestSignedRange(t *testing.T) {
	p := Params{Alpha: 0.3, Snap: 0.05}
	values := []float64{-180, -179.99, -90, -1, 0, 1, 90, 179.99, 180, 181, 359, -359, 540}
	for _, input := range values {
		for _, current := range values {
			got := Signed(input, current, p)
			if got <= -180 || got > 180 {
				t.Errorf("Signed(%v, %v): got %v, outside (-180,180]", input, current, got)
			}
		}
	}
}

func TestUnsignedShortWay(t *testing.T) {
	p := Params{Alpha: 0.5, Snap: 0.1}

	// 1 -> 359 is 2 degrees backwards, not 358 forwards.
	got := Unsigned(359, 1, p)
	if math.Abs(got-0) > 1e-9 {
		t.Errorf("Unsigned(359, 1): got %v, want 0", got)
	}

	got = Unsigned(1, 359, p)
	if math.Abs(got-0) > 1e-9 {
		t.Errorf("Unsigned(1, 359): got %v, want 0", got)
	}

	got = Unsigned(10, 350, p)
	if math.Abs(got-0) > 1e-9 {
		t.Errorf("Unsigned(10, 350): got %v, want 0", got)
	}
}

func TestSignedShortWay(t *testing.T) {
	p := Params{Alpha: 0.5, Snap: 0.1}
	got := Signed(-170, 170, p)
	if math.Abs(got-180) > 1e-9 {
		t.Errorf("Signed(-170, 170): got %v, want 180", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, unsigned, signed float64
	}{
		{0, 0, 0},
		{180, 180, 180},
		{-180, 180, 180},
		{360, 0, 0},
		{-90, 270, -90},
		{450, 90, 90},
		{190, 190, -170},
	}
	for _, tt := range tests {
		if got := WrapUnsigned(tt.in); got != tt.unsigned {
			t.Errorf("WrapUnsigned(%v): got %v, want %v", tt.in, got, tt.unsigned)
		}
		if got := WrapSigned(tt.in); got != tt.signed {
			t.Errorf("WrapSigned(%v): got %v, want %v", tt.in, got, tt.signed)
		}
	}
}

func TestChannelIgnoresNaN(t *testing.T) {
	c := NewChannel(Scalar, Params{Alpha: 1, Snap: 0})
	c.Set(42)
	c.Set(math.NaN())
	c.Set(math.Inf(1))
	if c.Raw() != 42 {
		t.Errorf("Raw: got %v, want 42", c.Raw())
	}
	if got := c.Step(); got != 42 {
		t.Errorf("Step: got %v, want 42", got)
	}
}

func TestChannelStep(t *testing.T) {
	c := NewChannel(UnsignedAngle, Params{Alpha: 0.5, Snap: 0.1})
	c.Reset(350)
	c.Set(10)
	if got := c.Step(); math.Abs(got-0) > 1e-9 {
		t.Errorf("Step 1: got %v, want 0", got)
	}
	if got := c.Step(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Step 2: got %v, want 5", got)
	}
}

func TestIntChannel(t *testing.T) {
	c := NewIntChannel(Params{Alpha: 0.5, Snap: 1})
	c.Set(100)
	if got := c.Step(); got != 50 {
		t.Errorf("Step: got %d, want 50", got)
	}
	c.Reset(-20)
	if c.Value() != -20 || c.Raw() != -20 {
		t.Errorf("Reset: got (%d, %d), want (-20, -20)", c.Raw(), c.Value())
	}
}

func TestTrendAccelerating(t *testing.T) {
	tr := NewTrend()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	speed := 100.0
	for i := 0; i <= 200; i++ {
		now := start.Add(time.Duration(i) * 50 * time.Millisecond)
		tr.Update(speed, now)
		speed += 0.1 // 2 kt/s
	}
	got := tr.Value()
	// Converges toward 2 kt/s * 6 s = 12 kt.
	if got < 8 || got > 13 {
		t.Errorf("Value: got %v, want about 12", got)
	}
	if !tr.Visible() {
		t.Error("expected trend to be visible")
	}
}

func TestTrendSteadyIsHidden(t *testing.T) {
	tr := NewTrend()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		tr.Update(120, start.Add(time.Duration(i)*50*time.Millisecond))
	}
	if tr.Visible() {
		t.Errorf("expected hidden trend, got %v", tr.Value())
	}
}

func TestTrendGapRestarts(t *testing.T) {
	tr := NewTrend()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	speed := 100.0
	for i := 0; i < 100; i++ {
		tr.Update(speed, start.Add(time.Duration(i)*50*time.Millisecond))
		speed += 0.2
	}
	if tr.Value() == 0 {
		t.Fatal("expected non-zero trend before gap")
	}
	tr.Update(50, start.Add(time.Minute))
	if tr.Value() != 0 {
		t.Errorf("after gap: got %v, want 0", tr.Value())
	}
}
