package encoder

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// RealPeripheral talks to the peripheral over an I2C bus.
type RealPeripheral struct {
	bus i2c.BusCloser
	dev *i2c.Dev

	led      bool
	ledKnown bool
}

// NewRealPeripheral opens bus (e.g. "1"; empty picks the first bus).
func NewRealPeripheral(bus string) (*RealPeripheral, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", bus, err)
	}
	return &RealPeripheral{
		bus: b,
		dev: &i2c.Dev{Bus: b, Addr: Address},
	}, nil
}

// Read fetches one frame.
func (p *RealPeripheral) Read() (Reading, error) {
	var buf [FrameSize]byte
	if err := p.dev.Tx(nil, buf[:]); err != nil {
		return Reading{}, fmt.Errorf("read encoder: %w", err)
	}
	return Decode(buf), nil
}

// SetLED writes the LED state when it changes.
func (p *RealPeripheral) SetLED(on bool) error {
	if p.ledKnown && p.led == on {
		return nil
	}
	if err := p.dev.Tx(ledFrame(on), nil); err != nil {
		return fmt.Errorf("write encoder led: %w", err)
	}
	p.led, p.ledKnown = on, true
	return nil
}

// Close releases the bus.
func (p *RealPeripheral) Close() error {
	if p.bus != nil {
		return p.bus.Close()
	}
	return nil
}
