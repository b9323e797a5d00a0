package gpio

// FakeInterrupt is a test double fired by the test.
type FakeInterrupt struct {
	Flag

	// Closed tracks if Close was called
	Closed bool
}

// Fire simulates a falling edge.
func (f *FakeInterrupt) Fire() { f.Set() }

// Close marks the interrupt as closed.
func (f *FakeInterrupt) Close() error {
	f.Closed = true
	return nil
}

// Always never clears: the frame loop reads the peripheral every frame.
// It is used when no interrupt line is configured.
type Always struct{}

// Take always returns true.
func (Always) Take() bool { return true }

// Close does nothing.
func (Always) Close() error { return nil }
