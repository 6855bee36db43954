//go:build !ebiten

package app

import (
	"time"

	"github.com/pkg/errors"

	"wiregrid/internal/core"
	"wiregrid/internal/sim"
)

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New returns an inert Game in the headless build.
func New(*sim.Simulator, *core.Grid, int) *Game { return &Game{} }

// Run reports that the GUI build tag is missing.
func Run(*Game, string, time.Duration) error {
	return errors.New("the ui command requires building with the 'ebiten' tag")
}
