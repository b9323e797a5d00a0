package status

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

var start = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func fixedTracker(cfg Config, now time.Time) *Tracker {
	tr := NewTracker(start, cfg)
	tr.now = func() time.Time { return now }
	return tr
}

func TestNewTracker(t *testing.T) {
	cfg := Config{Device: "pfd", FPS: 30, Broker: "tcp://localhost:1883", HTTPAddr: ":8080"}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.FPS != 30 {
		t.Errorf("Config.FPS: got %d, want 30", snap.Config.FPS)
	}
	if snap.MQTTConnected || snap.SerialConnected {
		t.Error("expected disconnected initially")
	}
	if snap.TelemetryAge() != -1 {
		t.Errorf("TelemetryAge: got %v, want -1", snap.TelemetryAge())
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	now := start.Add(90 * time.Second)
	tr := fixedTracker(Config{}, now)
	tr.Update(Panel{
		Device:        "hsi",
		Power:         "POWER_ON",
		Brightness:    80,
		Frames:        1200,
		LastTelemetry: now.Add(-2 * time.Second),
	})
	tr.SetMQTTConnected(true)
	tr.SetSerialConnected(true)

	snap := tr.Snapshot()
	if snap.Device != "hsi" || snap.Brightness != 80 || snap.Frames != 1200 {
		t.Errorf("panel: got %+v", snap.Panel)
	}
	if !snap.MQTTConnected || !snap.SerialConnected {
		t.Error("expected both links connected")
	}
	if snap.Uptime() != 90*time.Second {
		t.Errorf("Uptime: got %v, want 90s", snap.Uptime())
	}
	if snap.TelemetryAge() != 2*time.Second {
		t.Errorf("TelemetryAge: got %v, want 2s", snap.TelemetryAge())
	}
}

func TestSetNetwork(t *testing.T) {
	tr := NewTracker(start, Config{})
	if tr.Snapshot().Network != nil {
		t.Error("expected nil Network initially")
	}
	tr.SetNetwork(&NetworkInfo{Type: "wifi", IP: "192.168.1.42", Status: "connected"})
	if got := tr.Snapshot().Network; got == nil || got.IP != "192.168.1.42" {
		t.Errorf("Network: got %+v", got)
	}
}

func TestFormatJSON(t *testing.T) {
	now := start.Add(time.Hour)
	tr := fixedTracker(Config{Device: "pfd", FPS: 30, Broker: "tcp://b:1883", TopicPrefix: "sim/g5", DB: "g5.db", HTTPAddr: ":80"}, now)
	tr.Update(Panel{
		Device:         "pfd",
		Power:          "BATTERY_POWERED",
		Brightness:     50,
		BatteryPercent: 97,
		Alert:          "WITHIN_200",
		Frames:         108000,
		LastTelemetry:  now.Add(-1500 * time.Millisecond),
	})

	var sj StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &sj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := sj.Status.Panel
	if p.Device != "pfd" || p.Power != "BATTERY_POWERED" || p.Alert != "WITHIN_200" {
		t.Errorf("panel: got %+v", p)
	}
	if p.BatteryPercent != 97 || p.Frames != 108000 {
		t.Errorf("panel counters: got %+v", p)
	}
	if p.TelemetryAge != 1.5 {
		t.Errorf("telemetry age: got %v, want 1.5", p.TelemetryAge)
	}
	if sj.Status.UptimeSeconds != 3600 {
		t.Errorf("uptime: got %d, want 3600", sj.Status.UptimeSeconds)
	}
	if sj.Status.Timestamp != "2026-03-14T10:00:00Z" {
		t.Errorf("timestamp: got %q", sj.Status.Timestamp)
	}
	if sj.Status.Config.TopicPrefix != "sim/g5" || sj.Status.MQTT.Broker != "tcp://b:1883" {
		t.Errorf("config: got %+v", sj.Status.Config)
	}
	if sj.Status.Event != "" || sj.Status.Network != nil {
		t.Error("web JSON should carry no event or network")
	}
}

func TestFormatJSONUnknownState(t *testing.T) {
	var sj StatusJSON
	if err := json.Unmarshal(FormatJSON(NewTracker(start, Config{}).Snapshot()), &sj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sj.Status.Panel.Power != "UNKNOWN" || sj.Status.Panel.Device != "UNKNOWN" {
		t.Errorf("got %+v, want UNKNOWN placeholders", sj.Status.Panel)
	}
	if sj.Status.Panel.TelemetryAge != -1 {
		t.Errorf("telemetry age: got %v, want -1", sj.Status.Panel.TelemetryAge)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	tr := fixedTracker(Config{}, start)
	tr.SetNetwork(&NetworkInfo{Type: "wifi", SSID: "hangar"})

	data := FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "SIGTERM")
	if strings.Contains(string(data), "\n") {
		t.Error("event payload should be compact")
	}
	var sj StatusJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sj.Status.Event != "SHUTDOWN" || sj.Status.Reason != "SIGTERM" {
		t.Errorf("event: got %q %q", sj.Status.Event, sj.Status.Reason)
	}
	if sj.Status.Network == nil || sj.Status.Network.SSID != "hangar" {
		t.Errorf("network: got %+v", sj.Status.Network)
	}

	if strings.Contains(string(FormatStatusEvent(tr.Snapshot(), "STARTUP", "")), `"reason"`) {
		t.Error("empty reason should be omitted")
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(start, Config{})
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		i := i
		go func() {
			defer wg.Done()
			tr.Update(Panel{Frames: uint64(i)})
			tr.SetMQTTConnected(i%2 == 0)
		}()
		go func() {
			defer wg.Done()
			_ = FormatJSON(tr.Snapshot())
		}()
	}
	wg.Wait()
}
