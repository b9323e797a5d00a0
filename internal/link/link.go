// Package link carries telemetry and control events over a serial line.
//
// Both directions use ';'-terminated text frames. The host sends
// "id,value;" set-value frames. The panel sends "enc,<name>,<dir>;" for each
// encoder detent (dir 0 increase, 2 decrease) and "btn,<name>,<push>;" for
// button events.
package link

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.bug.st/serial"

	"github.com/sweeney/flight-panel/internal/telemetry"
)

// DefaultBaud is the default line speed.
const DefaultBaud = 115200

// maxFrame bounds a frame; longer input is discarded up to the next ';'.
const maxFrame = 256

// Link is one serial connection.
type Link struct {
	port io.ReadWriteCloser

	wmu sync.Mutex

	connected atomic.Bool
	frames    atomic.Uint64
	bad       atomic.Uint64
}

// Open opens the serial port at path.
func Open(path string, baud int) (*Link, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.Open(path, &serial.Mode{BaudRate: baud, DataBits: 8, StopBits: serial.OneStopBit, Parity: serial.NoParity})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", path, err)
	}
	return New(port), nil
}

// New wraps an open port.
func New(port io.ReadWriteCloser) *Link {
	l := &Link{port: port}
	l.connected.Store(true)
	return l
}

// Run reads frames until ctx is done or the port fails, handing each
// set-value frame to updates. A full channel drops the update.
func (l *Link) Run(ctx context.Context, updates chan<- telemetry.Update) error {
	stop := context.AfterFunc(ctx, func() { l.port.Close() })
	defer stop()
	defer l.connected.Store(false)

	r := bufio.NewReader(l.port)
	var frame []byte
	overlong := false
	for {
		b, err := r.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("read serial: port closed")
			}
			return fmt.Errorf("read serial: %w", err)
		}
		if b != ';' {
			if len(frame) < maxFrame {
				frame = append(frame, b)
			} else {
				overlong = true
			}
			continue
		}
		if overlong {
			l.bad.Add(1)
		} else if u, ok := ParseFrame(string(frame)); ok {
			l.frames.Add(1)
			select {
			case updates <- u:
			default:
				log.Printf("link: update queue full, dropping id %d", u.ID)
			}
		} else if len(strings.TrimSpace(string(frame))) > 0 {
			l.bad.Add(1)
		}
		frame = frame[:0]
		overlong = false
	}
}

// ParseFrame parses the body of an "id,value" frame.
func ParseFrame(s string) (telemetry.Update, bool) {
	s = strings.TrimSpace(s)
	idText, value, _ := strings.Cut(s, ",")
	id, err := strconv.Atoi(strings.TrimSpace(idText))
	if err != nil {
		return telemetry.Update{}, false
	}
	return telemetry.Update{ID: id, Value: value}, true
}

// SendEncoder writes count detent frames.
func (l *Link) SendEncoder(name string, count int, increase bool) {
	dir := 2
	if increase {
		dir = 0
	}
	frame := "enc," + name + "," + strconv.Itoa(dir) + ";"
	l.write(strings.Repeat(frame, max(count, 0)))
}

// SendButton writes a button frame.
func (l *Link) SendButton(name string, push int) {
	l.write("btn," + name + "," + strconv.Itoa(push) + ";")
}

func (l *Link) write(s string) {
	if s == "" || !l.connected.Load() {
		return
	}
	l.wmu.Lock()
	defer l.wmu.Unlock()
	if _, err := io.WriteString(l.port, s); err != nil {
		log.Printf("link: write: %v", err)
	}
}

// IsConnected reports whether the port is open and being read.
func (l *Link) IsConnected() bool { return l.connected.Load() }

// Frames returns the number of set-value frames received.
func (l *Link) Frames() uint64 { return l.frames.Load() }

// BadFrames returns the number of frames discarded as malformed.
func (l *Link) BadFrames() uint64 { return l.bad.Load() }

// Close closes the port.
func (l *Link) Close() error {
	l.connected.Store(false)
	return l.port.Close()
}
