package mqtt

// FakeClient records published events for test assertions.
type FakeClient struct {
	// Encoders contains every detent sent, one entry per detent.
	Encoders []EncoderEvent

	// Buttons contains every button press sent.
	Buttons []ButtonEvent

	// SystemEvents contains all lifecycle events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for lifecycle events.
	SystemPayloads [][]byte

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakeClient creates a FakeClient for testing.
func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

// SendEncoder records count detents.
func (f *FakeClient) SendEncoder(name string, count int, increase bool) {
	dir := DirDecrease
	if increase {
		dir = DirIncrease
	}
	for _i := 0; _i < count; _i++ {
		f.Encoders = append(f.Encoders, EncoderEvent{Name: name, Direction: dir})
	}
}

// SendButton records a button press.
func (f *FakeClient) SendButton(name string, push int) {
	f.Buttons = append(f.Buttons, ButtonEvent{Name: name, Push: push})
}

// PublishSystem records the lifecycle event.
func (f *FakeClient) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

// Close marks the client as closed.
func (f *FakeClient) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake client is "connected".
func (f *FakeClient) IsConnected() bool {
	return f.Connected
}
