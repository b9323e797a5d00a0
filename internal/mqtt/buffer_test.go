package mqtt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func payloads(ms []message) []byte {
	var out []byte
	for _, m := range ms {
		out = append(out, m.payload[0])
	}
	return out
}

func TestOutboxEmptyDrain(t *testing.T) {
	o := newOutbox(4)
	if got := o.drain(); got != nil {
		t.Errorf("drain: got %d messages, want nil", len(got))
	}
}

func TestOutboxKeepsOrder(t *testing.T) {
	o := newOutbox(4)
	for i := 0; i < 3; i++ {
		o.push(message{topic: "t", payload: []byte{byte(i)}})
	}
	if o.len() != 3 {
		t.Errorf("len: got %d, want 3", o.len())
	}
	if diff := cmp.Diff([]byte{0, 1, 2}, payloads(o.drain())); diff != "" {
		t.Errorf("drain mismatch (-want +got):\n%s", diff)
	}
	if o.len() != 0 {
		t.Errorf("len after drain: got %d, want 0", o.len())
	}
}

func TestOutboxDropsOldest(t *testing.T) {
	o := newOutbox(4)
	for i := 0; i < 7; i++ {
		o.push(message{topic: "t", payload: []byte{byte(i)}})
	}
	if diff := cmp.Diff([]byte{3, 4, 5, 6}, payloads(o.drain())); diff != "" {
		t.Errorf("drain mismatch (-want +got):\n%s", diff)
	}

	// The outbox is reusable after a drain.
	for i := 10; i < 12; i++ {
		o.push(message{topic: "t", payload: []byte{byte(i)}})
	}
	if diff := cmp.Diff([]byte{10, 11}, payloads(o.drain())); diff != "" {
		t.Errorf("second drain mismatch (-want +got):\n%s", diff)
	}
}

func TestOutboxPreservesFields(t *testing.T) {
	o := newOutbox(2)
	want := message{topic: "sim/g5/status", payload: []byte(`{"status":"ONLINE"}`), qos: 1, retained: true}
	o.push(want)
	got := o.drain()
	if diff := cmp.Diff([]message{want}, got, cmp.AllowUnexported(message{})); diff != "" {
		t.Errorf("drain mismatch (-want +got):\n%s", diff)
	}
}

func TestOutboxZeroCapacity(t *testing.T) {
	o := newOutbox(0)
	o.push(message{topic: "t", payload: []byte{1}})
	if o.drain() != nil {
		t.Error("zero-capacity outbox kept a message")
	}
}
