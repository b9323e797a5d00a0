package display

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/sweeney/flight-panel/internal/attitude"
	"github.com/sweeney/flight-panel/internal/logic"
	"github.com/sweeney/flight-panel/internal/menu"
	"github.com/sweeney/flight-panel/internal/panel"
	"github.com/sweeney/flight-panel/internal/settings"
	"github.com/sweeney/flight-panel/internal/tape"
)

// Tape positions are relative to each tape's own sprite; these shift them so
// the current value sits on the attitude center line.
const (
	centerY     = 200
	speedShift  = centerY - 200
	altShift    = centerY - 248
	speedX      = 0
	altX        = 400
	vsX         = 460
	tapeWidth   = 60
	headingTop  = 400
	glyphWidth  = 6
	glyphHeight = 16

	deviationScale = 0.5 // pixels per deviation unit
)

var (
	black       = color.RGBA{0, 0, 0, 255}
	white       = color.RGBA{255, 255, 255, 255}
	cyan        = color.RGBA{0, 230, 255, 255}
	magenta     = color.RGBA{255, 0, 255, 255}
	green       = color.RGBA{0, 220, 0, 255}
	yellow      = color.RGBA{255, 220, 0, 255}
	red         = color.RGBA{230, 0, 0, 255}
	gray        = color.RGBA{90, 90, 90, 255}
	sky         = color.RGBA{0, 110, 200, 255}
	ground      = color.RGBA{140, 85, 25, 255}
	fadedSky    = color.RGBA{120, 170, 220, 255}
	fadedGround = color.RGBA{180, 140, 90, 255}
	shade       = color.RGBA{0, 0, 0, 170}
)

func panelColor(c panel.Color) color.RGBA {
	switch c {
	case panel.Cyan:
		return cyan
	case panel.Magenta:
		return magenta
	case panel.Green:
		return green
	case panel.Yellow:
		return yellow
	case panel.Red:
		return red
	}
	return white
}

func attitudeColor(c attitude.Color) color.RGBA {
	switch c {
	case attitude.FadedSky:
		return fadedSky
	case attitude.FadedGround:
		return fadedGround
	case attitude.Red:
		return red
	}
	return white
}

func menuColor(c menu.Color) color.RGBA {
	switch c {
	case menu.Cyan:
		return cyan
	case menu.Magenta:
		return magenta
	case menu.Green:
		return green
	case menu.Yellow:
		return yellow
	}
	return white
}

func alertColor(c logic.AlertColor) (color.RGBA, bool) {
	switch c {
	case logic.ColorYellow:
		return yellow, true
	case logic.ColorBlank:
		return black, false
	}
	return cyan, true
}

var fillImage *ebiten.Image

func solid() *ebiten.Image {
	if fillImage == nil {
		fillImage = ebiten.NewImage(3, 3)
		fillImage.Fill(color.White)
	}
	return fillImage
}

func fillPolygon(dst *ebiten.Image, pts []r2.Vec, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255
	}
	dst.DrawTriangles(vs, is, solid(), &ebiten.DrawTrianglesOptions{})
}

func line(dst *ebiten.Image, a, b r2.Vec, width float32, c color.RGBA) {
	vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, c, true)
}

func drawText(dst *ebiten.Image, s string, x, y int) {
	ebitenutil.DebugPrintAt(dst, s, x, y)
}

// printRight prints s ending at x.
func printRight(dst *ebiten.Image, s string, x, y int) {
	ebitenutil.DebugPrintAt(dst, s, x-len(s)*glyphWidth, y)
}

// printCenter prints s centered on x.
func printCenter(dst *ebiten.Image, s string, x, y int) {
	ebitenutil.DebugPrintAt(dst, s, x-len(s)*glyphWidth/2, y)
}

func box(dst *ebiten.Image, x, y, w, h float32, fill, border color.RGBA) {
	vector.DrawFilledRect(dst, x, y, w, h, fill, false)
	vector.StrokeRect(dst, x, y, w, h, 1, border, false)
}

// Render draws f onto screen.
func Render(screen *ebiten.Image, f panel.Frame) {
	screen.Fill(black)
	if f.Blank {
		return
	}

	switch f.Device {
	case settings.HSI:
		drawHSI(screen, f)
	default:
		drawPrimary(screen, f)
	}

	if f.Stale {
		line(screen, r2.Vec{X: 0, Y: 0}, r2.Vec{X: Width, Y: Height}, 3, red)
		line(screen, r2.Vec{X: Width, Y: 0}, r2.Vec{X: 0, Y: Height}, 3, red)
		printCenter(screen, "NO DATA", Width/2, Height/2-glyphHeight)
	}
	drawMenu(screen, f.Menu)
	if f.Brightness != nil {
		box(screen, 140, 200, 200, 60, shade, white)
		printCenter(screen, "BRIGHTNESS", Width/2, 208)
		vector.DrawFilledRect(screen, 150, 232, float32(*f.Brightness)*1.8, 16, cyan, false)
	}
	if f.Shutdown != nil {
		box(screen, 90, 180, 300, 80, shade, yellow)
		printCenter(screen, shutdownText(f.Shutdown.Seconds), Width/2, 200)
		printCenter(screen, "any input to stay on", Width/2, 224)
	}
	if f.Battery != nil {
		drawBattery(screen, *f.Battery)
	}
}

func drawPrimary(dst *ebiten.Image, f panel.Frame) {
	if f.Attitude != nil {
		drawAttitude(dst, *f.Attitude)
	}
	if f.FlightDirector != nil {
		drawCue(dst, *f.FlightDirector)
	}
	drawBall(dst, f.Ball)
	if f.Speed != nil {
		drawSpeed(dst, f.Speed)
	}
	if f.Altitude != nil {
		drawAltitude(dst, f.Altitude)
	}
	if f.VerticalSpeed != nil {
		drawVerticalSpeed(dst, f.VerticalSpeed)
	}
	if f.Heading != nil {
		drawHeadingTape(dst, f.Heading)
	}
	if f.Autopilot != nil {
		drawAnnunciator(dst, f.Autopilot)
	}
	if f.Nav != nil {
		drawDeviation(dst, f.Nav)
	}
	if f.Device == settings.PFD {
		drawText(dst, oatText(f.OAT), 4, headingTop-glyphHeight)
	}
}

func drawAttitude(dst *ebiten.Image, a attitude.Frame) {
	cfg := attitude.DefaultConfig()
	vector.DrawFilledRect(dst, 0, 0, float32(cfg.Width), float32(cfg.Height), sky, false)

	// Ground is everything on the far side of the horizon from the sky.
	h := a.Horizon
	dir := r2.Sub(h.B, h.A)
	down := r2.Vec{X: -dir.Y, Y: dir.X}
	if a.Inverted {
		down = r2.Scale(-1, down)
	}
	n := r2.Norm(down)
	if n > 0 {
		far := r2.Scale(2*(cfg.Width+cfg.Height)/n, down)
		fillPolygon(dst, []r2.Vec{h.A, h.B, r2.Add(h.B, far), r2.Add(h.A, far)}, ground)
	}
	line(dst, h.A, h.B, 2, white)

	for _, r := range a.Rungs {
		line(dst, r.A, r.B, 2, attitudeColor(r.Color))
	}
	for _, l := range a.Labels {
		drawText(dst, itoa(l.Value), int(l.Pos.X)-glyphWidth, int(l.Pos.Y)-glyphHeight/2)
	}
	for _, c := range a.Chevrons {
		line(dst, c.Points[0], c.Points[1], 3, red)
		line(dst, c.Points[1], c.Points[2], 3, red)
	}

	// Aircraft symbol.
	c := cfg.Center
	line(dst, r2.Vec{X: c.X - 80, Y: c.Y}, r2.Vec{X: c.X - 30, Y: c.Y}, 4, yellow)
	line(dst, r2.Vec{X: c.X + 30, Y: c.Y}, r2.Vec{X: c.X + 80, Y: c.Y}, 4, yellow)
	vector.DrawFilledCircle(dst, float32(c.X), float32(c.Y), 3, yellow, true)
}

func drawCue(dst *ebiten.Image, cue attitude.Cue) {
	rad := cue.Rotation * math.Pi / 180
	arm := func(dx, dy float64) r2.Vec {
		return r2.Add(cue.Pivot, r2.Vec{
			X: dx*math.Cos(rad) - dy*math.Sin(rad),
			Y: dx*math.Sin(rad) + dy*math.Cos(rad),
		})
	}
	fillPolygon(dst, []r2.Vec{cue.Pivot, arm(-70, 18), arm(-55, 18)}, magenta)
	fillPolygon(dst, []r2.Vec{cue.Pivot, arm(70, 18), arm(55, 18)}, magenta)
}

func drawBall(dst *ebiten.Image, ball float64) {
	cx, y := float32(Width/2), float32(headingTop-30)
	vector.StrokeRect(dst, cx-40, y-10, 80, 20, 1, white, false)
	vector.DrawFilledCircle(dst, cx+float32(ballOffset(ball)), y, 8, white, true)
}

func tapeTicks(dst *ebiten.Image, out tape.Output, x, shift float32, labelRight bool) {
	for _, t := range out.Ticks {
		y := float32(t.Pos) + shift
		w := float32(8)
		if t.Major {
			w = 16
		}
		if labelRight {
			vector.StrokeLine(dst, x, y, x+w, y, 1, white, false)
			if t.Major {
				drawText(dst, itoa(t.Label), int(x)+20, int(y)-glyphHeight/2)
			}
		} else {
			vector.StrokeLine(dst, x+tapeWidth-w, y, x+tapeWidth, y, 1, white, false)
			if t.Major {
				printRight(dst, itoa(t.Label), int(x+tapeWidth)-20, int(y)-glyphHeight/2)
			}
		}
	}
}

func drawSpeed(dst *ebiten.Image, v *panel.SpeedView) {
	vector.DrawFilledRect(dst, speedX, 0, tapeWidth, headingTop, shade, false)
	for _, a := range v.Arcs {
		vector.DrawFilledRect(dst, speedX+tapeWidth-4, float32(math.Min(a.From, a.To))+speedShift, 4, float32(math.Abs(a.To-a.From)), panelColor(a.Color), false)
	}
	tapeTicks(dst, v.Tape, speedX, speedShift, false)
	for _, m := range v.Markers {
		drawText(dst, m.Label, speedX+tapeWidth+2, int(m.Pos)+speedShift-glyphHeight/2)
	}
	if v.Bug != nil {
		vector.DrawFilledRect(dst, speedX+tapeWidth-8, float32(v.Bug.Pos)+speedShift-6, 8, 12, cyan, false)
	}
	if v.TrendVisible {
		vector.StrokeLine(dst, speedX+tapeWidth-2, centerY, speedX+tapeWidth-2, float32(v.TrendPos)+speedShift, 2, magenta, false)
	}
	box(dst, speedX, centerY-12, tapeWidth-6, 24, black, white)
	printRight(dst, speedText(v.Tape.Readout), speedX+tapeWidth-10, centerY-8)

	if v.Mach > 0 {
		drawText(dst, machText(v.Mach), speedX+4, headingTop-glyphHeight)
	} else if v.TAS > 0 {
		drawText(dst, "TAS "+itoa(v.TAS), speedX+4, 2)
	}
	if v.GroundSpeed > 0 {
		drawText(dst, "GS "+itoa(v.GroundSpeed), speedX+4, headingTop-2*glyphHeight)
	}
}

func drawAltitude(dst *ebiten.Image, v *panel.AltitudeView) {
	vector.DrawFilledRect(dst, altX, 0, tapeWidth, headingTop, shade, false)
	tapeTicks(dst, v.Tape, altX, altShift, true)
	if v.TargetBug != nil {
		vector.DrawFilledRect(dst, altX, float32(v.TargetBug.Pos)+altShift-6, 8, 12, cyan, false)
	}
	box(dst, altX+4, centerY-12, tapeWidth-4, 24, black, white)
	printRight(dst, altitudeText(v.Tape.Readout), altX+tapeWidth-4, centerY-8)

	if c, ok := alertColor(v.AlertColor); ok {
		drawText(dst, v.TargetLabel, altX+4, 2)
		vector.StrokeRect(dst, altX+2, 0, tapeWidth-2, glyphHeight+4, 1, c, false)
	}
	drawText(dst, pressureText(v), altX+4, headingTop-glyphHeight)
}

func drawVerticalSpeed(dst *ebiten.Image, v *panel.VerticalSpeedView) {
	y := float32(centerY + v.Offset)
	vector.StrokeLine(dst, vsX, centerY, vsX+20, y, 3, white, true)
	if v.Bug != nil {
		vector.DrawFilledRect(dst, vsX+12, float32(centerY+v.Bug.Pos)-4, 8, 8, cyan, false)
	}
	if v.FeetPerMinute != 0 {
		printRight(dst, itoa(v.FeetPerMinute), vsX+20, int(y)-glyphHeight)
	}
}

func drawHeadingTape(dst *ebiten.Image, v *panel.HeadingView) {
	vector.DrawFilledRect(dst, 0, headingTop, Width, Height-headingTop, shade, false)
	for _, t := range v.Tape.Ticks {
		x := float32(t.Pos)
		h := float32(8)
		if t.Major {
			h = 14
			printCenter(dst, itoa(t.Label), int(x), headingTop+18)
		}
		vector.StrokeLine(dst, x, headingTop, x, headingTop+h, 1, white, false)
	}
	marker := func(m panel.Marker) {
		vector.DrawFilledRect(dst, float32(m.Pos)-5, headingTop, 10, 6, panelColor(m.Color), false)
	}
	marker(v.Bug)
	marker(v.Track)
	if v.Desired != nil {
		marker(*v.Desired)
	}
	box(dst, Width/2-24, headingTop+40, 48, 24, black, white)
	printCenter(dst, headingText(v.Readout), Width/2, headingTop+44)
}

func drawAnnunciator(dst *ebiten.Image, a *panel.Annunciator) {
	if !a.Active && a.LateralMode == "" && a.VerticalMode == "" {
		return
	}
	vector.DrawFilledRect(dst, tapeWidth, 0, altX-tapeWidth, glyphHeight+4, shade, false)
	drawText(dst, a.LateralMode, tapeWidth+6, 2)
	drawText(dst, a.LateralArmed, tapeWidth+50, 2)
	if a.Active {
		printCenter(dst, "AP", Width/2, 2)
	}
	if a.YawDamper {
		printCenter(dst, "YD", Width/2, 2+glyphHeight)
	}
	printRight(dst, a.VerticalMode+" "+a.Target, altX-60, 2)
	printRight(dst, a.VerticalArmed, altX-6, 2)
}

func drawDeviation(dst *ebiten.Image, n *panel.NavView) {
	c := green
	if n.GPS {
		c = magenta
	}
	if n.DeviationOK {
		x := float32(Width/2 + n.Deviation*deviationScale)
		vector.DrawFilledCircle(dst, x, headingTop-50, 5, c, true)
	}
	if n.GlideSlopeOK {
		y := float32(centerY + n.GlideSlope*deviationScale)
		vector.DrawFilledCircle(dst, altX-10, y, 5, c, true)
	}
}

func drawHSI(dst *ebiten.Image, f panel.Frame) {
	h := f.Heading
	if h == nil {
		return
	}
	center := r2.Vec{X: Width / 2, Y: 260}
	const radius = 170.0

	polar := func(deg, r float64) r2.Vec {
		rad := deg * math.Pi / 180
		return r2.Add(center, r2.Vec{X: r * math.Sin(rad), Y: -r * math.Cos(rad)})
	}

	for deg := 0; deg < 360; deg += 5 {
		rel := float64(deg) - h.Heading
		in := radius - 10
		if deg%10 == 0 {
			in = radius - 18
		}
		line(dst, polar(rel, in), polar(rel, radius), 2, white)
		if deg%30 == 0 {
			p := polar(rel, radius-34)
			printCenter(dst, cardinal(deg), int(p.X), int(p.Y)-glyphHeight/2)
		}
	}
	// Lubber line and readout.
	fillPolygon(dst, []r2.Vec{{X: center.X - 8, Y: center.Y - radius - 14}, {X: center.X + 8, Y: center.Y - radius - 14}, {X: center.X, Y: center.Y - radius}}, white)
	box(dst, float32(center.X)-24, 2, 48, 22, black, white)
	printCenter(dst, headingText(h.Readout), int(center.X), 5)

	fillPolygon(dst, []r2.Vec{polar(h.Bug.Pos-4, radius), polar(h.Bug.Pos+4, radius), polar(h.Bug.Pos, radius-12)}, cyan)
	vector.DrawFilledCircle(dst, float32(polar(h.Track.Pos, radius-4).X), float32(polar(h.Track.Pos, radius-4).Y), 4, magenta, true)

	for i, b := range f.Bearings {
		if !b.Visible {
			continue
		}
		c := cyan
		if i == 1 {
			c = green
		}
		line(dst, polar(b.Angle, radius-24), polar(b.Angle+180, radius-24), 2, c)
		drawText(dst, b.Label, 6, Height-glyphHeight*(2-i))
	}

	if n := f.Nav; n != nil {
		c := green
		if n.GPS {
			c = magenta
		}
		rel := n.Course - h.Heading
		line(dst, polar(rel, radius-40), polar(rel, 60), 4, c)
		line(dst, polar(rel+180, 60), polar(rel+180, radius-40), 4, c)
		if n.DeviationOK {
			off := r2.Vec{X: math.Cos(rel*math.Pi/180) * n.Deviation * deviationScale, Y: math.Sin(rel*math.Pi/180) * n.Deviation * deviationScale}
			line(dst, r2.Add(polar(rel, 58), off), r2.Add(polar(rel+180, 58), off), 4, c)
		}
		drawText(dst, n.Source, 6, 2)
		printRight(dst, n.ScaleLabel, Width-6, 2)
		drawText(dst, n.Approach, 6, 2+glyphHeight)
		if n.DesiredTrackOK {
			printRight(dst, "DTK "+headingText(int(math.Round(n.DesiredTrack))), Width-6, Height-2*glyphHeight)
		}
		printRight(dst, distanceText(n.DistNext)+" "+eteText(n.ETE), Width-6, Height-glyphHeight)
		drawText(dst, windText(n.WindDir, n.WindSpeed), 6, 2+2*glyphHeight)
	}
}

func drawMenu(dst *ebiten.Image, v menu.View) {
	if !v.Active {
		return
	}
	const x, w, rowH = 100, 280, 22
	var rows []menu.Row
	switch v.State {
	case menu.Browsing:
		rows = v.Items
	case menu.SettingsBrowsing:
		rows = settingsWindow(v.Settings, 10)
	case menu.Adjusting:
		if v.Adjusting != nil {
			rows = []menu.Row{*v.Adjusting}
		}
	case menu.Selecting:
		for i, o := range v.Options {
			rows = append(rows, menu.Row{Title: o.Label, Highlighted: i == v.Selected})
		}
	}
	y := float32(60)
	box(dst, x, y, w, float32(len(rows)*rowH+8), shade, white)
	for i, r := range rows {
		ry := y + 4 + float32(i*rowH)
		if r.Highlighted {
			vector.DrawFilledRect(dst, x+2, ry, w-4, rowH, gray, false)
		}
		drawText(dst, iconText(r.Icon)+r.Title, x+8, int(ry)+3)
		if r.Value != "" {
			printRight(dst, r.Value, x+w-8, int(ry)+3)
			vector.StrokeLine(dst, x+w-8-float32(len(r.Value)*glyphWidth), ry+rowH-3, x+w-8, ry+rowH-3, 1, menuColor(r.Color), false)
		}
	}
}

func drawBattery(dst *ebiten.Image, b panel.BatteryView) {
	const x, y = Width - 70, 4
	c := green
	if b.Bars <= 1 {
		c = red
	}
	vector.StrokeRect(dst, x, y, 50, 18, 1, white, false)
	for i := 0; i < b.Bars; i++ {
		vector.DrawFilledRect(dst, x+3+float32(i*12), y+3, 9, 12, c, false)
	}
	printRight(dst, itoa(b.Percent)+"%", x-4, y+1)
}
