// Package mqtt connects the panel to the simulator host over MQTT: telemetry
// arrives on set topics and encoder/button events go out as JSON.
//
// Topic layout under a prefix such as "flightsim/g5":
//
//	<prefix>/<device>/set/<id>   telemetry value (payload is the raw value)
//	<prefix>/event               outbound encoder and button events
//	<prefix>/system              lifecycle events, retained
package mqtt

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/sweeney/flight-panel/internal/menu"
	"github.com/sweeney/flight-panel/internal/telemetry"
)

// DefaultPrefix is the default topic prefix.
const DefaultPrefix = "flightsim/g5"

// Encoder bump directions on the wire.
const (
	DirIncrease = 0
	DirDecrease = 2
)

// Client is a connection to the broker. It is a menu.Sender so the menus can
// publish through it directly.
type Client interface {
	menu.Sender

	// PublishSystem sends a lifecycle event.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SetTopic is the subscription filter for telemetry.
func SetTopic(prefix string) string { return prefix + "/+/set/+" }

// EventTopic is where encoder and button events are published.
func EventTopic(prefix string) string { return prefix + "/event" }

// SystemTopic is where lifecycle events are published.
func SystemTopic(prefix string) string { return prefix + "/system" }

// ParseMessage turns a message on a set topic into a telemetry update.
func ParseMessage(prefix, topic string, payload []byte) (telemetry.Update, bool) {
	rest, ok := strings.CutPrefix(topic, prefix+"/")
	if !ok {
		return telemetry.Update{}, false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] != "set" || parts[0] == "" {
		return telemetry.Update{}, false
	}
	id, err := strconv.Atoi(parts[2])
	if err != nil {
		return telemetry.Update{}, false
	}
	return telemetry.Update{
		Device: parts[0],
		ID:     id,
		Value:  strings.TrimSpace(string(payload)),
	}, true
}

// EventPayload is the outbound event envelope. Exactly one field is set.
type EventPayload struct {
	Encoder *EncoderEvent `json:"encoder,omitempty"`
	Button  *ButtonEvent  `json:"button,omitempty"`
}

// EncoderEvent is one encoder detent.
type EncoderEvent struct {
	Name      string `json:"name"`
	Direction int    `json:"direction"`
}

// ButtonEvent is one button press.
type ButtonEvent struct {
	Name string `json:"name"`
	Push int    `json:"push"`
}

// FormatEncoder returns the payload for one detent of name.
func FormatEncoder(name string, increase bool) ([]byte, error) {
	dir := DirDecrease
	if increase {
		dir = DirIncrease
	}
	return json.Marshal(EventPayload{Encoder: &EncoderEvent{Name: name, Direction: dir}})
}

// FormatButton returns the payload for a button press.
func FormatButton(name string, push int) ([]byte, error) {
	return json.Marshal(EventPayload{Button: &ButtonEvent{Name: name, Push: push}})
}

// SystemEvent represents a lifecycle event (startup, shutdown, offline).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g. "STARTUP", "SHUTDOWN", "OFFLINE"
	Reason     string // e.g. "SIGTERM" (shutdown only)
	RawPayload []byte // pre-formatted payload; if set, FormatSystemPayload returns it
	Retained   bool
}

// SystemPayload is the payload of simple lifecycle events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the lifecycle event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}
	return json.Marshal(SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	})
}
