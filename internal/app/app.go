//go:build ebiten

package app

import (
	"time"

	"wiregrid/internal/core"
	"wiregrid/internal/render"
	"wiregrid/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a simulator to the ebiten.Game interface. The draw path only
// ever touches snapshots, so the simulation loop runs undisturbed at its own
// rate while ebiten renders at the display rate.
type Game struct {
	sim     *sim.Simulator
	source  *core.Grid
	painter *render.GridPainter
	scale   int
	w, h    int
}

// New constructs a Game for a simulator already compiled from source. The
// source grid is kept for reset.
func New(s *sim.Simulator, source *core.Grid, scale int) *Game {
	if scale < 1 {
		scale = 1
	}
	return &Game{
		sim:     s,
		source:  source.Clone(),
		painter: render.NewGridPainter(source.W, source.H),
		scale:   scale,
		w:       source.W,
		h:       source.H,
	}
}

// Update handles per-frame input. Space toggles run/pause, N single-steps
// while paused, R resets while paused.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.sim.Running() {
			g.sim.Stop()
		}
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.sim.Running() {
			g.sim.Stop()
		} else {
			g.sim.Start()
		}
	}
	if !g.sim.Running() {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			g.sim.StepOnce()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			fresh := g.source.Clone()
			g.sim.Reset(fresh)
		}
	}
	return nil
}

// Draw renders the latest published snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, render.Indices(g.sim.Snapshot()), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w * g.scale, g.h * g.scale
}

// Run opens the window and blocks until the viewer quits. The simulation is
// left stopped on exit.
func Run(g *Game, title string, period time.Duration) error {
	g.sim.SetPeriod(period)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.w*g.scale, g.h*g.scale)
	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}
