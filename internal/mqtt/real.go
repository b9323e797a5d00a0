package mqtt

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/sweeney/flight-panel/internal/telemetry"
)

// outboxSize bounds the events held while disconnected.
const outboxSize = 64

// RealClient talks to an actual MQTT broker.
type RealClient struct {
	client  paho.Client
	prefix  string
	updates chan<- telemetry.Update

	mu     sync.Mutex
	outbox *outbox

	dropped atomic.Uint64
}

// NewRealClient starts connecting to broker in the background and returns
// immediately; events published before the connection is up are held in the
// outbox. Telemetry is delivered on updates; when the channel is full the
// update is dropped.
func NewRealClient(broker, prefix string, updates chan<- telemetry.Update) *RealClient {
	c := &RealClient{
		prefix:  prefix,
		updates: updates,
		outbox:  newOutbox(outboxSize),
	}

	will, _ := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "OFFLINE", Reason: "LWT", Retained: true})
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("flight-panel-" + uuid.NewString()[:8]).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetBinaryWill(SystemTopic(prefix), will, 1, true).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	c.client = paho.NewClient(opts)
	c.client.Connect()
	return c
}

func (c *RealClient) onConnect(client paho.Client) {
	log.Printf("mqtt: connected, subscribing %s", SetTopic(c.prefix))
	client.Subscribe(SetTopic(c.prefix), 0, c.onMessage)

	c.mu.Lock()
	held := c.outbox.drain()
	c.mu.Unlock()
	for _, m := range held {
		client.Publish(m.topic, m.qos, m.retained, m.payload)
	}
}

func (c *RealClient) onMessage(_ paho.Client, m paho.Message) {
	u, ok := ParseMessage(c.prefix, m.Topic(), m.Payload())
	if !ok {
		return
	}
	select {
	case c.updates <- u:
	default:
		if c.dropped.Add(1) == 1 {
			log.Printf("mqtt: update queue full, dropping")
		}
	}
}

// publish sends m without waiting for the broker, or holds it while
// disconnected.
func (c *RealClient) publish(m message) {
	c.mu.Lock()
	if !c.client.IsConnectionOpen() {
		c.outbox.push(m)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.client.Publish(m.topic, m.qos, m.retained, m.payload)
}

// SendEncoder publishes count detents of name.
func (c *RealClient) SendEncoder(name string, count int, increase bool) {
	payload, err := FormatEncoder(name, increase)
	if err != nil {
		log.Printf("mqtt: format encoder event: %v", err)
		return
	}
	for _i := 0; _i < count; _i++ {
		c.publish(message{topic: EventTopic(c.prefix), payload: payload})
	}
}

// SendButton publishes a button press.
func (c *RealClient) SendButton(name string, push int) {
	payload, err := FormatButton(name, push)
	if err != nil {
		log.Printf("mqtt: format button event: %v", err)
		return
	}
	c.publish(message{topic: EventTopic(c.prefix), payload: payload})
}

// PublishSystem sends a lifecycle event and waits for the broker.
func (c *RealClient) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	if !c.client.IsConnectionOpen() {
		return fmt.Errorf("publish system: not connected")
	}

	token := c.client.Publish(SystemTopic(c.prefix), 1, event.Retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish system timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish system: %w", err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (c *RealClient) IsConnected() bool {
	return c.client.IsConnectionOpen()
}

// Dropped returns how many telemetry updates were dropped.
func (c *RealClient) Dropped() uint64 { return c.dropped.Load() }

// Close disconnects from the broker.
func (c *RealClient) Close() error {
	c.client.Disconnect(1000)
	return nil
}
