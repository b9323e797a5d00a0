// Package encoder reads the rotary encoder and button peripheral. The
// peripheral sits on I2C and answers every read with a 3-byte frame: the
// signed encoder delta since the last read, the encoder button event and the
// extra (power) button event.
package encoder

import "github.com/sweeney/flight-panel/internal/logic"

// Address is the peripheral's I2C address.
const Address = 0x08

// FrameSize is the length of one peripheral frame.
const FrameSize = 3

// cmdLED sets the encoder LED; the second byte is 0 or 1.
const cmdLED = 0x01

// Reading is one decoded frame. Its layout matches panel.Input.
type Reading struct {
	Delta  int
	Button logic.ButtonEvent
	Power  logic.ButtonEvent
}

// Peripheral is the encoder peripheral.
type Peripheral interface {
	// Read fetches and decodes one frame.
	Read() (Reading, error)

	// SetLED drives the encoder LED.
	SetLED(on bool) error

	// Close releases the bus.
	Close() error
}

// Decode turns a raw frame into a Reading. Unknown button codes read as idle.
func Decode(b [FrameSize]byte) Reading {
	return Reading{
		Delta:  int(int8(b[0])),
		Button: button(b[1]),
		Power:  button(b[2]),
	}
}

func button(b byte) logic.ButtonEvent {
	e := logic.ButtonEvent(b)
	if e > logic.ButtonReleased {
		return logic.ButtonIdle
	}
	return e
}

func ledFrame(on bool) []byte {
	if on {
		return []byte{cmdLED, 1}
	}
	return []byte{cmdLED, 0}
}
