// Package status provides a thread-safe status tracker for the panel.
// The frame loop writes it; HTTP handlers and lifecycle events read it.
package status

import (
	"sync"
	"time"
)

// NetworkInfo contains network state as reported by the host helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains the command-line configuration for display.
type Config struct {
	Device      string
	FPS         int
	Broker      string
	TopicPrefix string
	Serial      string
	Baud        int
	DB          string
	HTTPAddr    string
	Headless    bool
}

// Panel is the instrument state published by the frame loop.
type Panel struct {
	Device         string
	Power          string
	Brightness     int
	BatteryPercent int
	Alert          string
	Stale          bool
	Frames         uint64
	LastTelemetry  time.Time
}

// Snapshot is a point-in-time view of the panel.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Panel
	StartTime       time.Time
	Now             time.Time
	MQTTConnected   bool
	SerialConnected bool
	Network         *NetworkInfo
	Config          Config
}

// Uptime returns the duration since the panel started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// TelemetryAge returns the time since the last telemetry message, or -1
// when none arrived yet.
func (s Snapshot) TelemetryAge() time.Duration {
	if s.LastTelemetry.IsZero() {
		return -1
	}
	return s.Now.Sub(s.LastTelemetry)
}

// Tracker holds mutable panel state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		now: time.Now,
	}
}

// Update replaces the panel state. Called from the frame loop.
func (t *Tracker) Update(p Panel) {
	t.mu.Lock()
	t.snap.Panel = p
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetSerialConnected sets the serial link status.
func (t *Tracker) SetSerialConnected(connected bool) {
	t.mu.Lock()
	t.snap.SerialConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the panel state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	now := t.now
	t.mu.RUnlock()
	s.Now = now()
	return s
}
