package link

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sweeney/flight-panel/internal/menu"
	"github.com/sweeney/flight-panel/internal/telemetry"
)

var _ menu.Sender = (*Link)(nil)

type fakePort struct {
	r *io.PipeReader

	mu      sync.Mutex
	written bytes.Buffer
}

func (p *fakePort) Read(b []byte) (int, error) { return p.r.Read(b) }

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.Write(b)
}

func (p *fakePort) Close() error { return p.r.Close() }

func (p *fakePort) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.String()
}

func receive(t *testing.T, ch <-chan telemetry.Update, n int) []telemetry.Update {
	t.Helper()
	var got []telemetry.Update
	for _i := 0; _i < n; _i++ {
		select {
		case u := <-ch:
			got = append(got, u)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d updates", len(got))
		}
	}
	return got
}

func TestParseFrame(t *testing.T) {
	tests := []struct {
		in   string
		want telemetry.Update
		ok   bool
	}{
		{"60,92.5", telemetry.Update{ID: 60, Value: "92.5"}, true},
		{"\r\n-1,", telemetry.Update{ID: -1}, true},
		{"82,40|45|55", telemetry.Update{ID: 82, Value: "40|45|55"}, true},
		{"13", telemetry.Update{ID: 13}, true},
		{"x,1", telemetry.Update{}, false},
		{"", telemetry.Update{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseFrame(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseFrame(%q): ok got %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseFrame(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestRunDeliversFrames(t *testing.T) {
	pr, pw := io.Pipe()
	l := New(&fakePort{r: pr})
	updates := make(chan telemetry.Update, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx, updates) }()

	go io.WriteString(pw, "junk;"+strings.Repeat("x", 300)+";60,92.5;\r\n9,270;;77,")

	want := []telemetry.Update{{ID: 60, Value: "92.5"}, {ID: 9, Value: "270"}}
	if diff := cmp.Diff(want, receive(t, updates, 2)); diff != "" {
		t.Errorf("updates mismatch (-want +got):\n%s", diff)
	}
	if l.Frames() != 2 {
		t.Errorf("frames: got %d, want 2", l.Frames())
	}
	if l.BadFrames() != 2 {
		t.Errorf("bad frames: got %d, want 2", l.BadFrames())
	}
	if !l.IsConnected() {
		t.Error("not connected while running")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run after cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if l.IsConnected() {
		t.Error("connected after Run returned")
	}
}

func TestRunPortFailure(t *testing.T) {
	pr, pw := io.Pipe()
	l := New(&fakePort{r: pr})
	pw.Close()
	if err := l.Run(context.Background(), make(chan telemetry.Update, 1)); err == nil {
		t.Error("expected error when the port closes")
	}
}

func TestSendFrames(t *testing.T) {
	pr, _ := io.Pipe()
	port := &fakePort{r: pr}
	l := New(port)

	menu.Bump(l, menu.EncKohls, -2)
	menu.Bump(l, menu.EncHeading, 1)
	l.SendButton(menu.BtnPFDEncoder, 3)

	want := "enc,encKohls,2;enc,encKohls,2;enc,encHeading,0;btn,btnPfdEncoder,3;"
	if got := port.String(); got != want {
		t.Errorf("written: got %q, want %q", got, want)
	}

	l.Close()
	l.SendButton(menu.BtnPFDEncoder, 1)
	if got := port.String(); got != want {
		t.Errorf("written after close: got %q", got)
	}
}
