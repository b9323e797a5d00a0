package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/flight-panel/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"clock":     clock,
	"age":       age,
	"orUnknown": orUnknown,
	"linkClass": linkClass,
}).Parse(indexHTML))

// clock renders d as hh:mm:ss, prefixed with whole days.
func clock(d time.Duration) string {
	d = d.Truncate(time.Second)
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hms := fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	if days > 0 {
		return fmt.Sprintf("%dd %s", days, hms)
	}
	return hms
}

func age(d time.Duration) string {
	if d < 0 {
		return "never"
	}
	return d.Truncate(100*time.Millisecond).String() + " ago"
}

func orUnknown(s string) string {
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

func linkClass(up bool) string {
	if up {
		return "up"
	}
	return "down"
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Flight Panel</title>
<style>
body { background: #111; color: #ddd; font: 14px/1.5 monospace; max-width: 520px; margin: 1.5em auto; padding: 0 1em; }
h1 { color: #0ef; font-size: 1.3em; border-bottom: 2px solid #0ef; }
h2 { color: #aaa; font-size: 1em; text-transform: uppercase; margin: 1.5em 0 0.3em; }
dl { display: grid; grid-template-columns: 12em 1fr; gap: 2px 1em; margin: 0; }
dt { color: #888; }
dd { margin: 0; }
.up { color: #0d0; }
.down { color: #e00; }
.warn { color: #fd0; }
a { color: #0ef; }
</style>
</head>
<body>
<h1>Flight Panel ({{orUnknown .Device}})</h1>

<h2>Instrument</h2>
<dl>
<dt>Power</dt><dd id="power" class="{{if eq .Power "POWER_ON"}}up{{else}}warn{{end}}">{{orUnknown .Power}}</dd>
<dt>Brightness</dt><dd>{{.Brightness}}%</dd>
<dt>Battery</dt><dd>{{.BatteryPercent}}%</dd>
<dt>Altitude alert</dt><dd>{{orUnknown .Alert}}</dd>
<dt>Frames drawn</dt><dd>{{.Frames}}</dd>
<dt>Last telemetry</dt><dd id="telemetry" class="{{if .Stale}}warn{{end}}">{{age .TelemetryAge}}</dd>
</dl>

<h2>Links</h2>
<dl>
<dt>MQTT {{.Config.TopicPrefix}}</dt><dd class="{{linkClass .MQTTConnected}}">{{orUnknown .Config.Broker}}</dd>
{{- if .Config.Serial}}
<dt>Serial</dt><dd class="{{linkClass .SerialConnected}}">{{.Config.Serial}} @ {{.Config.Baud}}</dd>
{{- end}}
{{- with .Network}}
<dt>Network</dt><dd>{{.Status}} ({{.Type}}{{if .SSID}}, {{.SSID}}{{end}})</dd>
<dt>Address</dt><dd>{{.IP}}</dd>
{{- end}}
</dl>

<h2>Host</h2>
<dl>
<dt>Up</dt><dd>{{clock .Uptime}} since {{.StartTime.UTC.Format "2006-01-02 15:04:05Z"}}</dd>
<dt>Frame rate</dt><dd>{{.Config.FPS}} fps{{if .Config.Headless}}, no window{{end}}</dd>
<dt>Settings store</dt><dd>{{.Config.DB}}</dd>
</dl>

<p><a href="/index.json">index.json</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	data := struct {
		status.Snapshot
		Uptime       time.Duration
		TelemetryAge time.Duration
	}{
		Snapshot:     snap,
		Uptime:       snap.Uptime(),
		TelemetryAge: snap.TelemetryAge(),
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: render index: %v", err)
	}
}
