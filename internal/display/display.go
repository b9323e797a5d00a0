// Package display draws panel frames in an ebiten window.
//
// The window is driven by ebiten's game loop: every tick Update pulls one
// frame from the panel's frame loop and Draw renders the last frame pulled.
package display

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/sweeney/flight-panel/internal/logic"
	"github.com/sweeney/flight-panel/internal/panel"
)

// Screen size of the instrument.
const (
	Width  = 480
	Height = 480
)

// StepFunc advances the frame loop by one frame. kb is the keyboard input
// read this tick.
type StepFunc func(kb panel.Input) panel.Frame

// Game implements ebiten.Game.
type Game struct {
	ctx   context.Context
	step  StepFunc
	frame panel.Frame
	enter heldKey
	power heldKey
}

// New creates a Game. It stops when ctx is done.
func New(ctx context.Context, step StepFunc) *Game {
	return &Game{ctx: ctx, step: step}
}

// Update pulls the next frame.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.frame = g.step(g.keyboard())
	return nil
}

// Draw renders the last frame.
func (g *Game) Draw(screen *ebiten.Image) {
	Render(screen, g.frame)
}

// Layout keeps the instrument at its native size; ebiten scales the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return Width, Height
}

// Run opens the window and blocks until the game stops.
func Run(g *Game, fps int, fullscreen bool) error {
	ebiten.SetWindowSize(Width, Height)
	ebiten.SetWindowTitle("Flight Panel")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if fps > 0 {
		ebiten.SetTPS(fps)
	}
	if fullscreen {
		ebiten.SetFullscreen(true)
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run display: %w", err)
	}
	return nil
}

// keyboard maps keys onto the encoder peripheral for desktop use: arrows
// turn the encoder, Enter is its push button and P the power button. Holding
// either for two seconds long-presses it.
func (g *Game) keyboard() panel.Input {
	var in panel.Input
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		in.Delta++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		in.Delta--
	}
	long := 2 * ebiten.TPS()
	in.Button = g.enter.update(ebiten.IsKeyPressed(ebiten.KeyEnter), long)
	in.Power = g.power.update(ebiten.IsKeyPressed(ebiten.KeyP), long)
	return in
}

// heldKey turns a held key into button events.
type heldKey struct {
	held int // ticks the key has been down
}

// update advances one tick. A release before long ticks is a click; reaching
// long ticks is a long press, and the release that follows is ignored.
func (k *heldKey) update(pressed bool, long int) logic.ButtonEvent {
	if pressed {
		k.held++
		if k.held == long {
			return logic.ButtonLongPressed
		}
		return logic.ButtonIdle
	}
	held := k.held
	k.held = 0
	if held > 0 && held < long {
		return logic.ButtonClicked
	}
	return logic.ButtonIdle
}
