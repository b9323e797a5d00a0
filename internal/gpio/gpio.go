// Package gpio watches the encoder peripheral's data-available line.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "sync/atomic"

// Interrupt reports when the peripheral has new data.
type Interrupt interface {
	// Take reports whether the line fired since the last call and clears
	// the signal.
	Take() bool

	// Close releases GPIO resources.
	Close() error
}

// DefaultLine is the interrupt line offset (BCM numbering).
const DefaultLine = 4

// Flag is the data-available signal. Set may be called from the edge event
// handler; Take is called by the frame loop. Nothing else is shared.
type Flag struct {
	set atomic.Bool
}

// Set raises the flag.
func (f *Flag) Set() { f.set.Store(true) }

// Take returns true once per raise.
func (f *Flag) Take() bool { return f.set.CompareAndSwap(true, false) }
