// Command flight-panel drives a simulated flight instrument from telemetry
// received over MQTT or a serial link.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sweeney/flight-panel/internal/display"
	"github.com/sweeney/flight-panel/internal/encoder"
	"github.com/sweeney/flight-panel/internal/gpio"
	"github.com/sweeney/flight-panel/internal/link"
	"github.com/sweeney/flight-panel/internal/logic"
	"github.com/sweeney/flight-panel/internal/menu"
	"github.com/sweeney/flight-panel/internal/mqtt"
	"github.com/sweeney/flight-panel/internal/panel"
	"github.com/sweeney/flight-panel/internal/settings"
	"github.com/sweeney/flight-panel/internal/status"
	"github.com/sweeney/flight-panel/internal/store"
	"github.com/sweeney/flight-panel/internal/telemetry"
	"github.com/sweeney/flight-panel/internal/web"
)

// updateQueue bounds telemetry waiting for the frame loop. Producers drop
// updates when it is full.
const updateQueue = 512

type options struct {
	device      string
	fps         int
	broker      string
	topicPrefix string
	serial      string
	baud        int
	db          string
	httpAddr    string
	i2cBus      string
	irqLine     int
	headless    bool
	fullscreen  bool
	logFile     string
}

func main() {
	var o options
	flag.StringVar(&o.device, "device", "", "Instrument to show: HSI, PFD or ISIS (empty keeps the stored choice)")
	flag.IntVar(&o.fps, "fps", 60, "Frames per second")
	flag.StringVar(&o.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address (empty to disable)")
	flag.StringVar(&o.topicPrefix, "topic-prefix", mqtt.DefaultPrefix, "MQTT topic prefix")
	flag.StringVar(&o.serial, "serial", "", "Serial port for telemetry (empty to disable)")
	flag.IntVar(&o.baud, "baud", link.DefaultBaud, "Serial baud rate")
	flag.StringVar(&o.db, "db", "flight-panel.db", "Settings database path")
	flag.StringVar(&o.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.StringVar(&o.i2cBus, "i2c-bus", "1", "I2C bus of the encoder peripheral (empty to disable)")
	flag.IntVar(&o.irqLine, "irq-line", gpio.DefaultLine, "GPIO line of the peripheral interrupt (-1 to poll every frame)")
	flag.BoolVar(&o.headless, "headless", false, "Run the frame loop without a window")
	flag.BoolVar(&o.fullscreen, "fullscreen", false, "Run the window fullscreen")
	flag.StringVar(&o.logFile, "log-file", "", "Also write logs to this rotated file")

	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(o options) error {
	if o.logFile != "" {
		lj := &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		defer lj.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, lj))
	}
	if o.fps <= 0 {
		return fmt.Errorf("invalid fps %d", o.fps)
	}

	kv, err := store.OpenSQLite(o.db)
	if err != nil {
		return err
	}
	defer kv.Close()

	if o.device != "" {
		if err := storeDevice(kv, o.device); err != nil {
			return err
		}
	}

	updates := make(chan telemetry.Update, updateQueue)
	var out fanout

	var client mqtt.Client
	var mqttStatus mqtt.ConnectionStatus
	if o.broker != "" {
		c := mqtt.NewRealClient(o.broker, o.topicPrefix, updates)
		defer c.Close()
		client, mqttStatus = c, c
		out = append(out, c)
	}

	var lk *link.Link
	if o.serial != "" {
		lk, err = link.Open(o.serial, o.baud)
		if err != nil {
			return err
		}
		defer lk.Close()
		out = append(out, lk)
	}

	var enc encoder.Peripheral
	var irq gpio.Interrupt = gpio.Always{}
	if o.i2cBus != "" {
		p, err := encoder.NewRealPeripheral(o.i2cBus)
		if err != nil {
			return fmt.Errorf("init encoder: %w", err)
		}
		defer p.Close()
		enc = p
		if o.irqLine >= 0 {
			r, err := gpio.NewRealInterrupt(o.irqLine)
			if err != nil {
				return fmt.Errorf("init gpio: %w", err)
			}
			defer r.Close()
			irq = r
		}
	}

	pnl, err := panel.New(kv, out, time.Now())
	if err != nil {
		return err
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		Device:      pnl.Device().String(),
		FPS:         o.fps,
		Broker:      o.broker,
		TopicPrefix: o.topicPrefix,
		Serial:      o.serial,
		Baud:        o.baud,
		DB:          o.db,
		HTTPAddr:    o.httpAddr,
		Headless:    o.headless,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	l := &loop{
		panel:      pnl,
		updates:    updates,
		enc:        enc,
		irq:        irq,
		tracker:    tracker,
		mqttStatus: mqttStatus,
		now:        time.Now,
	}
	if lk != nil {
		l.serialStatus = lk
	}
	l.refreshStatus(panel.Frame{})

	if client != nil {
		publishSystem(client, tracker, "STARTUP", "", time.Now())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if o.httpAddr != "" {
		srv := web.New(o.httpAddr, tracker)
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			return srv.Shutdown(context.Background())
		})
		log.Printf("http status server listening on %s", o.httpAddr)
	}
	if lk != nil {
		g.Go(func() error { return runLink(gctx, lk, updates) })
	}

	log.Printf("started: device=%s fps=%d broker=%s serial=%s headless=%v",
		pnl.Device(), o.fps, o.broker, o.serial, o.headless)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var reason string
	if o.headless {
		ticker := time.NewTicker(time.Second / time.Duration(o.fps))
		defer ticker.Stop()
		reason = runLoop(gctx, l, ticker.C, sigCh)
	} else {
		reason = runWindow(gctx, l, o, sigCh)
	}

	if client != nil {
		publishSystem(client, tracker, "SHUTDOWN", reason, time.Now())
	}
	cancel()
	if err := g.Wait(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	return nil
}

// storeDevice records the -device choice so the panel starts on it.
func storeDevice(kv store.KV, name string) error {
	d, err := settings.ParseDeviceType(name)
	if err != nil {
		return err
	}
	s, err := settings.Load(kv)
	if err != nil {
		return err
	}
	if s.Device == d {
		return nil
	}
	s.Device = d
	return settings.Save(kv, s)
}

// runWindow runs the ebiten window on the calling goroutine until it is
// closed, a signal arrives or ctx is done.
func runWindow(ctx context.Context, l *loop, o options, sig <-chan os.Signal) string {
	wctx, stop := context.WithCancel(ctx)
	defer stop()

	reason := make(chan string, 1)
	go func() {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			reason <- signalName(s)
			stop()
		case <-wctx.Done():
		}
	}()

	if err := display.Run(display.New(wctx, l.step), o.fps, o.fullscreen); err != nil {
		log.Printf("display: %v", err)
	}
	stop()
	select {
	case r := <-reason:
		return r
	default:
	}
	if ctx.Err() != nil {
		return "ERROR"
	}
	return "WINDOW_CLOSED"
}

// runLoop steps the panel on every tick until a signal arrives or ctx is
// done, and returns the shutdown reason.
func runLoop(ctx context.Context, l *loop, tick <-chan time.Time, sig <-chan os.Signal) string {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			return signalName(s)
		case <-ctx.Done():
			return "ERROR"
		case <-tick:
			l.step(panel.Input{})
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

// runLink reads the serial link until ctx is done or the port fails. A
// failed link shows as disconnected; the panel keeps running on MQTT.
func runLink(ctx context.Context, lk *link.Link, updates chan<- telemetry.Update) error {
	if err := lk.Run(ctx, updates); err != nil {
		log.Printf("serial link stopped: %v", err)
	}
	return nil
}

// connectivity is implemented by the serial link.
type connectivity interface {
	IsConnected() bool
}

// loop owns the panel and its inputs. step is only called from one goroutine.
type loop struct {
	panel   *panel.Panel
	updates <-chan telemetry.Update
	enc     encoder.Peripheral
	irq     gpio.Interrupt
	tracker *status.Tracker

	mqttStatus   mqtt.ConnectionStatus
	serialStatus connectivity

	// last LED state written to the encoder board
	led, ledWritten bool

	now func() time.Time
}

// step runs one frame: queued telemetry, then peripheral and keyboard
// input, then the panel update.
func (l *loop) step(kb panel.Input) panel.Frame {
	t := l.now()

	for drained := false; !drained; {
		select {
		case u := <-l.updates:
			if u.For(l.panel.Device()) {
				l.panel.SetValue(u.ID, u.Value, t)
			}
		default:
			drained = true
		}
	}

	in := kb
	if l.enc != nil && l.irq.Take() {
		r, err := l.enc.Read()
		if err != nil {
			log.Printf("encoder read error: %v", err)
		} else {
			in = merge(panel.Input(r), kb)
		}
	}

	f := l.panel.Update(in, t)

	if on := l.panel.LED(); l.enc != nil && (!l.ledWritten || on != l.led) {
		if err := l.enc.SetLED(on); err != nil {
			log.Printf("encoder led error: %v", err)
		} else {
			l.led, l.ledWritten = on, true
		}
	}
	l.refreshStatus(f)
	return f
}

func (l *loop) refreshStatus(f panel.Frame) {
	t := l.now()
	l.tracker.Update(status.Panel{
		Device:         l.panel.Device().String(),
		Power:          string(l.panel.PowerState()),
		Brightness:     l.panel.Brightness(),
		BatteryPercent: l.panel.BatteryPercent(t),
		Alert:          string(l.panel.AlertState()),
		Stale:          f.Stale,
		Frames:         l.panel.Frames(),
		LastTelemetry:  l.panel.LastTelemetry(),
	})
	if l.mqttStatus != nil {
		l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
	}
	if l.serialStatus != nil {
		l.tracker.SetSerialConnected(l.serialStatus.IsConnected())
	}
}

// merge combines peripheral and keyboard input; peripheral buttons win.
func merge(hw, kb panel.Input) panel.Input {
	out := hw
	out.Delta += kb.Delta
	if out.Button == logic.ButtonIdle {
		out.Button = kb.Button
	}
	if out.Power == logic.ButtonIdle {
		out.Power = kb.Power
	}
	return out
}

// fanout sends outbound events to every connected transport.
type fanout []menu.Sender

func (f fanout) SendEncoder(name string, count int, increase bool) {
	for _, s := range f {
		s.SendEncoder(name, count, increase)
	}
}

func (f fanout) SendButton(name string, push int) {
	for _, s := range f {
		s.SendButton(name, push)
	}
}

func publishSystem(client mqtt.Client, tracker *status.Tracker, event, reason string, now time.Time) {
	snap := tracker.Snapshot()
	e := mqtt.SystemEvent{
		Timestamp:  now,
		Event:      event,
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, event, reason),
	}
	if err := client.PublishSystem(e); err != nil {
		log.Printf("failed to publish %s event: %v", event, err)
		return
	}
	log.Printf("published %s event", event)
}

// Host helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
