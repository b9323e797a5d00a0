// Package settings holds the persisted instrument configuration.
package settings

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/sweeney/flight-panel/internal/store"
)

// Version is bumped whenever the persisted layout changes. A stored record
// with another version is replaced by defaults.
const Version = 7

// Store location of the settings record.
const (
	Namespace = "settings"
	Key       = "g5"
)

// DeviceType selects which instrument the panel shows.
type DeviceType int

const (
	HSI DeviceType = iota
	PFD
	ISIS
)

func (d DeviceType) String() string {
	switch d {
	case HSI:
		return "hsi"
	case PFD:
		return "pfd"
	case ISIS:
		return "isis"
	default:
		return "unknown"
	}
}

// ParseDeviceType parses "hsi", "pfd" or "isis".
func ParseDeviceType(s string) (DeviceType, error) {
	switch strings.ToLower(s) {
	case "hsi":
		return HSI, nil
	case "pfd":
		return PFD, nil
	case "isis":
		return ISIS, nil
	}
	return 0, fmt.Errorf("unknown device type %q", s)
}

// Valid reports whether d is a known device.
func (d DeviceType) Valid() bool { return d >= HSI && d <= ISIS }

// Bearing pointer sources.
const (
	BearingOff = iota
	BearingGPS
	BearingVLOC1
	BearingVLOC2
	BearingADF
)

// Settings is the persisted configuration record.
type Settings struct {
	Version  int `msgpack:"version"`
	Bearing1 int `msgpack:"bearing1"`
	Bearing2 int `msgpack:"bearing2"`

	Vr  int `msgpack:"vr"`
	Vx  int `msgpack:"vx"`
	Vy  int `msgpack:"vy"`
	Va  int `msgpack:"va"`
	Vfe int `msgpack:"vfe"`
	Vs0 int `msgpack:"vs0"`
	Vs1 int `msgpack:"vs1"`
	Vg  int `msgpack:"vg"`
	Vno int `msgpack:"vno"`
	Vne int `msgpack:"vne"`

	Device       DeviceType `msgpack:"device"`
	Brightness   int        `msgpack:"brightness"`
	PowerControl int        `msgpack:"power_control"`
}

// Defaults returns the factory settings.
func Defaults() Settings {
	return Settings{
		Version:      Version,
		Vr:           60,
		Vx:           75,
		Vy:           91,
		Va:           112,
		Vfe:          110,
		Vs0:          54,
		Vs1:          61,
		Vg:           80,
		Vno:          145,
		Vne:          182,
		Device:       ISIS,
		Brightness:   100,
		PowerControl: 2,
	}
}

// Def is one user-adjustable numeric setting.
type Def struct {
	Name  string
	Value *int
	Min   int
	Max   int
}

// Clamp limits v to the setting's bounds.
func (d Def) Clamp(v int) int {
	if v < d.Min {
		return d.Min
	}
	if v > d.Max {
		return d.Max
	}
	return v
}

// Defs returns the adjustable V-speeds bound to s, in display order.
func (s *Settings) Defs() []Def {
	return []Def{
		{"Vs0", &s.Vs0, 0, 255},
		{"Vs1", &s.Vs1, 0, 255},
		{"Vr", &s.Vr, 0, 400},
		{"Vx", &s.Vx, 0, 700},
		{"Vy", &s.Vy, 0, 700},
		{"Vg", &s.Vg, 0, 700},
		{"Va", &s.Va, 0, 700},
		{"Vfe", &s.Vfe, 0, 250},
		{"Vno", &s.Vno, 0, 700},
		{"Vne", &s.Vne, 0, 700},
	}
}

// SetVSpeeds parses a "|"-delimited list in the order
// Vs0|Vs1|Vr|Vx|Vy|Vg|Va|Vfe|Vno|Vne. Missing or malformed fields become 0
// and negative values 0. An empty string leaves s unchanged and returns false.
func (s *Settings) SetVSpeeds(str string) bool {
	if strings.TrimSpace(str) == "" {
		return false
	}
	fields := strings.Split(str, "|")
	targets := []*int{&s.Vs0, &s.Vs1, &s.Vr, &s.Vx, &s.Vy, &s.Vg, &s.Va, &s.Vfe, &s.Vno, &s.Vne}
	for i, t := range targets {
		v := 0
		if i < len(fields) {
			if n, err := strconv.Atoi(strings.TrimSpace(fields[i])); err == nil && n > 0 {
				v = n
			}
		}
		*t = v
	}
	return true
}

// Load reads the settings from kv. A missing or unreadable record, or one
// written by another version, is replaced by defaults, which are saved back.
func Load(kv store.KV) (Settings, error) {
	var s Settings
	found, err := kv.Get(Namespace, Key, &s)
	if errors.Is(err, store.ErrCorrupt) {
		log.Printf("settings: unreadable record, using defaults: %v", err)
		found = false
	} else if err != nil {
		return Defaults(), fmt.Errorf("load settings: %w", err)
	}
	if !found || s.Version != Version {
		s = Defaults()
		if err := Save(kv, s); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Save writes s to kv.
func Save(kv store.KV, s Settings) error {
	s.Version = Version
	if err := kv.Put(Namespace, Key, s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
