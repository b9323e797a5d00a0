package telemetry

import "github.com/sweeney/flight-panel/internal/settings"

// AllDevices addresses an update to whichever instrument is shown.
const AllDevices = "all"

// Update is one set-value message as received from a transport. Transports
// run on their own goroutines and hand updates to the frame loop, which
// applies them.
type Update struct {
	Device string // instrument name, AllDevices, or empty
	ID     int
	Value  string
}

// For reports whether u is addressed to device d.
func (u Update) For(d settings.DeviceType) bool {
	return u.Device == "" || u.Device == AllDevices || u.Device == d.String()
}
