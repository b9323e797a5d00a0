// Package logic contains the instrument state machines: power lifecycle and
// altitude alerting.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// PowerState is the display power lifecycle state.
type PowerState string

const (
	PowerInvalid   PowerState = "INVALID"
	PowerOff       PowerState = "POWER_OFF"
	PowerOn        PowerState = "POWER_ON"
	ShuttingDown   PowerState = "SHUTTING_DOWN"
	BatteryPowered PowerState = "BATTERY_POWERED"
	HardPowerOff   PowerState = "HARD_POWER_OFF"
)

// PowerControl selects who decides when the display is powered.
type PowerControl int

const (
	Manual        PowerControl = 0 // power button only
	DeviceManaged PowerControl = 1 // host telemetry wakes the display
	AlwaysOn      PowerControl = 2 // never powers off
)

func (c PowerControl) String() string {
	switch c {
	case Manual:
		return "MANUAL"
	case DeviceManaged:
		return "DEVICE_MANAGED"
	case AlwaysOn:
		return "ALWAYS_ON"
	default:
		return "UNKNOWN"
	}
}

// ButtonEvent is a button edge reported by the encoder peripheral.
type ButtonEvent int

const (
	ButtonIdle        ButtonEvent = 0
	ButtonClicked     ButtonEvent = 1
	ButtonPressed     ButtonEvent = 2
	ButtonLongPressed ButtonEvent = 3
	ButtonReleased    ButtonEvent = 4
)

// Held reports whether the button is being held down.
func (b ButtonEvent) Held() bool {
	return b == ButtonPressed || b == ButtonLongPressed
}

// Transition describes a power state change and the effects the caller must
// apply to the hardware.
type Transition struct {
	At   time.Time
	From PowerState
	To   PowerState

	// SetBacklight is true when Backlight must be written to the display.
	SetBacklight bool
	Backlight    int // 0..255
	// Redraw is true when the whole screen must be repainted.
	Redraw bool
}

// AlertState is the altitude alerter state.
type AlertState string

const (
	AlertIdle       AlertState = "IDLE"
	AlertWithin1000 AlertState = "WITHIN_1000"
	AlertWithin200  AlertState = "WITHIN_200"
	AlertCaptured   AlertState = "CAPTURED"
	AlertDeviated   AlertState = "DEVIATED"
)

// AlertColor is the color of the target altitude readout.
type AlertColor string

const (
	ColorCyan   AlertColor = "CYAN"
	ColorYellow AlertColor = "YELLOW"
	ColorBlank  AlertColor = "BLANK" // flash off phase
)
