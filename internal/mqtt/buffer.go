package mqtt

import "log"

// message is an outbound publish held while the broker is unreachable.
type message struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// outbox keeps the most recent messages published while disconnected and
// replays them in order on reconnect. Not safe for concurrent use.
type outbox struct {
	buf     []message
	head    int // next write position
	count   int
	dropped int // since the last drain
}

func newOutbox(capacity int) *outbox {
	return &outbox{buf: make([]message, capacity)}
}

func (o *outbox) push(m message) {
	if len(o.buf) == 0 {
		return
	}
	if o.count == len(o.buf) {
		if o.dropped == 0 {
			log.Printf("mqtt: outbox full (%d messages), dropping oldest", len(o.buf))
		}
		o.dropped++
	} else {
		o.count++
	}
	o.buf[o.head] = m
	o.head = (o.head + 1) % len(o.buf)
}

// drain returns the held messages, oldest first, and empties the outbox.
func (o *outbox) drain() []message {
	if o.count == 0 {
		return nil
	}
	out := make([]message, 0, o.count)
	start := (o.head - o.count + len(o.buf)) % len(o.buf)
	for i := 0; i < o.count; i++ {
		out = append(out, o.buf[(start+i)%len(o.buf)])
	}
	if o.dropped > 0 {
		log.Printf("mqtt: replaying %d messages, %d dropped", o.count, o.dropped)
	}
	o.head, o.count, o.dropped = 0, 0, 0
	return out
}

func (o *outbox) len() int { return o.count }
