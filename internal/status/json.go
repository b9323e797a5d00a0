package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Panel         PanelJSON    `json:"panel"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Serial        SerialStatus `json:"serial"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// PanelJSON is the JSON representation of the instrument state.
type PanelJSON struct {
	Device         string  `json:"device"`
	Power          string  `json:"power"`
	Brightness     int     `json:"brightness"`
	BatteryPercent int     `json:"battery_percent"`
	Alert          string  `json:"altitude_alert"`
	Stale          bool    `json:"stale"`
	Frames         uint64  `json:"frames"`
	TelemetryAge   float64 `json:"telemetry_age_seconds"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// SerialStatus reports the serial link state.
type SerialStatus struct {
	Connected bool   `json:"connected"`
	Port      string `json:"port"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of the configuration.
type ConfigJSON struct {
	Device      string `json:"device"`
	FPS         int    `json:"fps"`
	Broker      string `json:"broker"`
	TopicPrefix string `json:"topic_prefix"`
	Serial      string `json:"serial,omitempty"`
	Baud        int    `json:"baud,omitempty"`
	DB          string `json:"db"`
	HTTPAddr    string `json:"http_addr"`
	Headless    bool   `json:"headless"`
}

func orUnknown(s string) string {
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

func buildInner(snap Snapshot) StatusInner {
	age := -1.0
	if a := snap.TelemetryAge(); a >= 0 {
		age = a.Truncate(time.Millisecond).Seconds()
	}
	inner := StatusInner{
		Panel: PanelJSON{
			Device:         orUnknown(snap.Device),
			Power:          orUnknown(snap.Power),
			Brightness:     snap.Brightness,
			BatteryPercent: snap.BatteryPercent,
			Alert:          orUnknown(snap.Alert),
			Stale:          snap.Stale,
			Frames:         snap.Frames,
			TelemetryAge:   age,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Serial:        SerialStatus{Connected: snap.SerialConnected, Port: snap.Config.Serial},
		Config: ConfigJSON{
			Device:      snap.Config.Device,
			FPS:         snap.Config.FPS,
			Broker:      snap.Config.Broker,
			TopicPrefix: snap.Config.TopicPrefix,
			Serial:      snap.Config.Serial,
			Baud:        snap.Config.Baud,
			DB:          snap.Config.DB,
			HTTPAddr:    snap.Config.HTTPAddr,
			Headless:    snap.Config.Headless,
		},
	}
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT lifecycle event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
