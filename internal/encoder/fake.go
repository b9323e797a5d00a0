package encoder

// FakePeripheral is a test double that returns scripted frames.
type FakePeripheral struct {
	// Frames are returned one per Read; once exhausted Read returns an
	// idle Reading.
	Frames [][FrameSize]byte

	// ReadError, if set, will be returned by Read()
	ReadError error

	LED       bool
	LEDWrites int
	Reads     int
	Closed    bool
}

// Read returns the next scripted frame.
func (f *FakePeripheral) Read() (Reading, error) {
	f.Reads++
	if f.ReadError != nil {
		return Reading{}, f.ReadError
	}
	if len(f.Frames) == 0 {
		return Reading{}, nil
	}
	b := f.Frames[0]
	f.Frames = f.Frames[1:]
	return Decode(b), nil
}

// SetLED records the LED state.
func (f *FakePeripheral) SetLED(on bool) error {
	f.LED = on
	f.LEDWrites++
	return nil
}

// Close marks the peripheral as closed.
func (f *FakePeripheral) Close() error {
	f.Closed = true
	return nil
}
