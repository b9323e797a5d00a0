//go:build !linux

package gpio

import "errors"

// RealInterrupt is not available on non-Linux platforms.
type RealInterrupt struct {
	Flag
}

// NewRealInterrupt returns an error on non-Linux platforms.
func NewRealInterrupt(line int) (*RealInterrupt, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Close is not implemented on non-Linux platforms.
func (r *RealInterrupt) Close() error {
	return nil
}
