//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealInterrupt watches a hardware line through the Linux GPIO character device.
type RealInterrupt struct {
	Flag
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealInterrupt requests line on gpiochip0. The peripheral pulls the line
// low when a frame is ready, so falling edges raise the flag.
func NewRealInterrupt(line int) (*RealInterrupt, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealInterrupt{chip: chip}
	l, err := chip.RequestLine(line,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { r.Set() }),
	)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request interrupt line %d: %w", line, err)
	}
	r.line = l

	// Data may already be pending from before the request.
	if v, err := l.Value(); err == nil && v == 0 {
		r.Set()
	}
	return r, nil
}

// Close releases the line and chip. The line is returned to a plain input
// with pull-down, matching the Pi boot default.
func (r *RealInterrupt) Close() error {
	var errs []error
	if r.line != nil {
		if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure interrupt line: %w", err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close interrupt line: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
